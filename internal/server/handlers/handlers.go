package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thedomainai/pl-sanky-diagram/internal/config"
	"github.com/thedomainai/pl-sanky-diagram/internal/exporter"
	"github.com/thedomainai/pl-sanky-diagram/internal/model"
	"github.com/thedomainai/pl-sanky-diagram/internal/sankey"
	"github.com/thedomainai/pl-sanky-diagram/internal/service/store"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Extractor 決算短信PDFからP/Lレコードを抽出する外部サービス
type Extractor interface {
	ExtractPDF(ctx context.Context, pdf []byte) (*model.Statement, error)
}

// Handlers API処理器
type Handlers struct {
	store     *store.MemoryStore
	extractor Extractor
	exporter  *exporter.Exporter
	cfg       *config.AppConfig
}

// NewHandlers 処理器を作成する
func NewHandlers(st *store.MemoryStore, extractor Extractor, cfg *config.AppConfig) *Handlers {
	return &Handlers{
		store:     st,
		extractor: extractor,
		exporter:  exporter.NewExporter(),
		cfg:       cfg,
	}
}

// RegisterRoutes ルートを登録する
func (h *Handlers) RegisterRoutes(api *gin.RouterGroup) {
	pl := api.Group("/pl")
	{
		pl.POST("/extract", h.ExtractPL)
		pl.GET("", h.ListPL)
		pl.POST("/export", h.ExportPosted)
		pl.GET("/:id", h.GetPL)
		pl.GET("/:id/flows", h.GetFlows)
		pl.GET("/:id/graph", h.GetGraph)
		pl.GET("/:id/export", h.ExportPL)
		pl.DELETE("/:id", h.DeletePL)
	}
}

// Response 共通レスポンス
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// extractResult 抽出APIの返却形
type extractResult struct {
	ID      string           `json:"id"`
	Data    *model.Statement `json:"data"`
	Rows    []sankey.Row     `json:"rows"`
	Warning string           `json:"warning,omitempty"`
}

// ExtractPL PDFを受け取り抽出・検証してSankey表まで構築する
func (h *Handlers) ExtractPL(c *gin.Context) {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		errorResponse(c, 1001, "PDFファイルが必要です")
		return
	}

	if !strings.EqualFold(fileHeader.Header.Get("Content-Type"), "application/pdf") &&
		!strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".pdf") {
		errorResponse(c, 1002, "PDFファイルのみ対応しています")
		return
	}

	maxBytes := int64(h.cfg.Extract.MaxPDFMB) * 1024 * 1024
	if fileHeader.Size > maxBytes {
		errorResponse(c, 1003, fmt.Sprintf("ファイルサイズは%dMB以下にしてください", h.cfg.Extract.MaxPDFMB))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		errorResponse(c, 5001, "ファイルの読み込みに失敗しました")
		return
	}
	defer file.Close()

	pdf, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 5001, "ファイルの読み込みに失敗しました")
		return
	}

	st, err := h.extractor.ExtractPDF(c.Request.Context(), pdf)
	if err != nil {
		code, message := mapExtractError(err)
		errorResponse(c, code, message)
		return
	}

	rows := sankey.BuildRows(st)
	entry := &store.Entry{
		ID:        uuid.NewString(),
		FileName:  fileHeader.Filename,
		Statement: st,
		Rows:      rows,
	}
	h.store.Put(entry)

	success(c, extractResult{
		ID:      entry.ID,
		Data:    st,
		Rows:    rows,
		Warning: st.SegmentGapWarning(),
	})
}

// mapExtractError 抽出エラーを利用者向けのコードと文言に写す
func mapExtractError(err error) (int, string) {
	var missing *model.MissingSegmentDataError
	if errors.As(err, &missing) {
		return 2002, missing.Error()
	}
	var schema *model.SchemaError
	if errors.As(err, &schema) {
		return 2003, schema.Error()
	}
	return 5002, "データ抽出に失敗しました: " + err.Error()
}

// ListPL 抽出結果の一覧（新しい順）
func (h *Handlers) ListPL(c *gin.Context) {
	type summary struct {
		ID           string `json:"id"`
		FileName     string `json:"file_name"`
		CompanyName  string `json:"company_name"`
		FiscalPeriod string `json:"fiscal_period"`
		CreatedAt    string `json:"created_at"`
	}

	entries := h.store.List()
	result := make([]summary, 0, len(entries))
	for _, e := range entries {
		result = append(result, summary{
			ID:           e.ID,
			FileName:     e.FileName,
			CompanyName:  e.Statement.CompanyName,
			FiscalPeriod: e.Statement.FiscalPeriod,
			CreatedAt:    e.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	success(c, result)
}

// GetPL 検証済みのP/Lレコードを返す
func (h *Handlers) GetPL(c *gin.Context) {
	entry, err := h.store.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, entry.Statement)
}

// GetFlows Sankey表（億円）を返す
func (h *Handlers) GetFlows(c *gin.Context) {
	entry, err := h.store.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, entry.Rows)
}

// GetGraph 指定年度のグラフを返す。year=this|last（既定はthis）
func (h *Handlers) GetGraph(c *gin.Context) {
	entry, err := h.store.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}

	useThisYear := true
	switch c.Query("year") {
	case "", "this":
	case "last":
		useThisYear = false
	default:
		errorResponse(c, 1004, "yearは this または last を指定してください")
		return
	}

	graph, err := sankey.Assemble(entry.Rows, useThisYear)
	if err != nil {
		// Flow Builderの不変条件違反。回復せずそのまま報告する
		errorResponse(c, 5003, err.Error())
		return
	}
	success(c, graph)
}

// ExportPL 保管済みレコードをExcelとしてダウンロードさせる
func (h *Handlers) ExportPL(c *gin.Context) {
	entry, err := h.store.Get(c.Param("id"))
	if err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	h.writeWorkbook(c, entry.Statement, entry.Rows)
}

// ExportPosted 受け取ったレコードを検証してExcelとして返す（保管しない）
func (h *Handlers) ExportPosted(c *gin.Context) {
	var raw map[string]any
	if err := c.ShouldBindJSON(&raw); err != nil {
		errorResponse(c, 1001, "JSONボディが必要です")
		return
	}

	st, err := model.Validate(raw)
	if err != nil {
		errorResponse(c, 2003, err.Error())
		return
	}

	h.writeWorkbook(c, st, sankey.BuildRows(st))
}

// DeletePL 抽出結果を破棄する
func (h *Handlers) DeletePL(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		errorResponse(c, 4001, err.Error())
		return
	}
	success(c, nil)
}

func (h *Handlers) writeWorkbook(c *gin.Context, st *model.Statement, rows []sankey.Row) {
	f, err := h.exporter.Export(st, rows)
	if err != nil {
		errorResponse(c, 5004, "Excel出力に失敗しました: "+err.Error())
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		errorResponse(c, 5004, "Excel出力に失敗しました: "+err.Error())
		return
	}

	filename := url.PathEscape(exporter.FileName(st))
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+filename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
