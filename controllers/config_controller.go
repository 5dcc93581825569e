package controllers

import (
	"strings"

	"sazonpos/configs"
	"sazonpos/pkg/resp"

	"github.com/gin-gonic/gin"
)

type UpdateConfigRequest struct {
	Name              string `json:"name" binding:"required"`
	TaxID             string `json:"taxId"`
	InvoiceRangeStart string `json:"invoiceRangeStart"`
	InvoiceRangeEnd   string `json:"invoiceRangeEnd"`
	Language          string `json:"language" binding:"omitempty,oneof=es en"`
	Currency          string `json:"currency" binding:"omitempty,len=3,alpha"`
	LogoPath          string `json:"logoPath"`
}

type ConfigController struct {
	Store *configs.RestaurantConfigStore
}

func NewConfigController(store *configs.RestaurantConfigStore) *ConfigController {
	return &ConfigController{Store: store}
}

// GET /api/config
func (cc *ConfigController) Get(c *gin.Context) {
	resp.OK(c, cc.Store.Get())
}

// POST /api/config replaces the whole document.
func (cc *ConfigController) Update(c *gin.Context) {
	var req UpdateConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	cfg := configs.RestaurantConfig{
		Name:              strings.TrimSpace(req.Name),
		TaxID:             strings.TrimSpace(req.TaxID),
		InvoiceRangeStart: strings.TrimSpace(req.InvoiceRangeStart),
		InvoiceRangeEnd:   strings.TrimSpace(req.InvoiceRangeEnd),
		Language:          req.Language,
		Currency:          strings.ToUpper(req.Currency),
		LogoPath:          req.LogoPath,
	}
	def := configs.DefaultRestaurantConfig()
	if cfg.Language == "" {
		cfg.Language = def.Language
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}

	if err := cc.Store.Update(cfg); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, cc.Store.Get())
}
