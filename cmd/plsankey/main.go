package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/thedomainai/pl-sanky-diagram/internal/config"
	"github.com/thedomainai/pl-sanky-diagram/internal/server"
	"github.com/thedomainai/pl-sanky-diagram/internal/util"
)

var (
	port    = flag.Int("port", 0, "サーバのポート (config.toml を上書き)")
	devMode = flag.Bool("dev", false, "開発モード")
)

func main() {
	flag.Parse()

	fmt.Println("==========================================")
	fmt.Println("  決算短信 P/L Analyzer")
	fmt.Println("==========================================")

	// .env からAPIキー等を読み込む（無ければ環境変数をそのまま使う）
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Printf("設定の読み込みに失敗したため既定値を使います: %v", err)
		cfg = config.DefaultConfig()
	}

	if *port > 0 {
		cfg.Server.Port = *port
	}
	if *devMode {
		cfg.Server.DevMode = true
	}

	if os.Getenv("GEMINI_API_KEY") == "" {
		log.Printf("警告: GEMINI_API_KEY が未設定です。PDF抽出は失敗します")
	}

	if dataDir, err := config.EnsureDataDir(cfg); err != nil {
		log.Printf("データディレクトリの作成に失敗: %v", err)
	} else {
		fmt.Printf("データディレクトリ: %s\n", dataDir)
	}

	srv := server.NewServer(cfg)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)

	go func() {
		fmt.Printf("サーバ起動中、ポート %d で待機します...\n", cfg.Server.Port)
		if err := srv.Run(addr); err != nil {
			log.Fatalf("サーバの起動に失敗: %v", err)
		}
	}()

	if !cfg.Server.DevMode {
		fmt.Printf("ブラウザを開きます: %s\n", url)
		if err := util.OpenBrowserWithFallback(url); err != nil {
			fmt.Printf("ブラウザを自動で開けませんでした。手動でアクセスしてください: %s\n", url)
		}
	} else {
		fmt.Printf("開発モード: %s にアクセスしてください\n", url)
	}

	fmt.Println("\nCtrl+C で停止します...")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("\nサーバを終了します")
}
