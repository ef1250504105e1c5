package handlers

import (
	"bytes"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"badge-verifier/internal/badge"
	"badge-verifier/internal/export"
	"badge-verifier/internal/lookup"
	"badge-verifier/internal/models"
	"badge-verifier/internal/store"

	"github.com/gin-gonic/gin"
)

const (
	defaultPerPage = 5
	maxPerPage     = 100
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Every endpoint answers 200 with a success flag; failures are reported in the body.
type BadgeHandler struct {
	store    store.Store
	resolver *lookup.Resolver
	now      func() time.Time
}

func NewBadgeHandler(s store.Store, resolver *lookup.Resolver) *BadgeHandler {
	return &BadgeHandler{store: s, resolver: resolver, now: time.Now}
}

func fail(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"success": false, "error": msg})
}

// POST /generate_qr (form-encoded)
func (h *BadgeHandler) GenerateQR(c *gin.Context) {
	var in models.CreateBadgeDTO
	if err := c.ShouldBind(&in); err != nil {
		fail(c, "invalid form: "+err.Error())
		return
	}
	if msg := in.Validate(); msg != "" {
		fail(c, msg)
		return
	}

	now := h.now()
	if in.EmployeeID == "" {
		in.EmployeeID = badge.GenerateEmployeeID(now)
	}
	rec := models.Record{
		EmployeeID:  in.EmployeeID,
		Name:        in.Name,
		DOB:         in.DOB,
		JoiningDate: in.JoiningDate,
		Post:        in.Post,
		Department:  in.Department,
		CreatedAt:   now,
	}

	recordID, err := h.store.Insert(c.Request.Context(), &rec)
	if err != nil {
		log.Printf("generate_qr: %s insert failed: %v", h.store.Name(), err)
		fail(c, "failed to save employee record")
		return
	}

	qr, err := badge.PNGDataURI(badge.Encode(rec))
	if err != nil {
		log.Printf("generate_qr: %v", err)
		fail(c, "failed to generate QR code")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"qr_code":       qr,
		"employee_data": rec,
		"record_id":     recordID,
	})
}

// POST /scan_data {"data": "<decoded QR text>"}
func (h *BadgeHandler) ScanData(c *gin.Context) {
	var in struct {
		Data *string `json:"data"`
	}
	if err := c.ShouldBindJSON(&in); err != nil || in.Data == nil {
		fail(c, "data is required")
		return
	}

	res := h.resolver.Resolve(c.Request.Context(), *in.Data)
	if res.Status == lookup.Failed {
		log.Printf("scan_data: lookup degraded to no match: %v", res.Err)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"employee_data": res.View(),
		"scanned_data":  *in.Data,
	})
}

func queryInt(c *gin.Context, key string, def int) (int, bool) {
	v := c.Query(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// GET /get_records?page=&per_page=&search=&filter_by=
func (h *BadgeHandler) GetRecords(c *gin.Context) {
	page, ok := queryInt(c, "page", 1)
	if !ok {
		fail(c, "page must be an integer")
		return
	}
	perPage, ok := queryInt(c, "per_page", defaultPerPage)
	if !ok {
		fail(c, "per_page must be an integer")
		return
	}
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	if page > math.MaxInt/perPage {
		page = math.MaxInt / perPage
	}

	q := store.ListQuery{
		Page:    page,
		PerPage: perPage,
		Term:    c.Query("search"),
		Field:   store.ParseField(c.Query("filter_by")),
	}
	result, err := h.store.List(c.Request.Context(), q)
	if err != nil {
		log.Printf("get_records: %s list failed: %v", h.store.Name(), err)
		result = store.Page{Records: []models.Record{}}
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"employees":  result.Records,
		"pagination": models.NewPagination(page, perPage, result.Total),
	})
}

// GET /search_employee?q=&field=
func (h *BadgeHandler) SearchEmployee(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "results": []models.Record{}})
		return
	}

	results, err := h.store.Search(c.Request.Context(), term, store.ParseField(c.Query("field")), store.DefaultSearchLimit)
	if err != nil {
		log.Printf("search_employee: %s search failed: %v", h.store.Name(), err)
		results = []models.Record{}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

// GET /export_records?search=&filter_by=
func (h *BadgeHandler) ExportRecords(c *gin.Context) {
	recs, err := export.Collect(c.Request.Context(), h.store, c.Query("search"), store.ParseField(c.Query("filter_by")))
	if err != nil {
		log.Printf("export_records: %s list failed: %v", h.store.Name(), err)
		recs = nil
	}

	var buf bytes.Buffer
	if err := export.WriteRecords(&buf, recs); err != nil {
		log.Printf("export_records: %v", err)
		fail(c, "failed to build spreadsheet")
		return
	}

	filename := "employees_" + h.now().Format("20060102_150405") + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}
