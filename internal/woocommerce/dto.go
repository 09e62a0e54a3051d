package woocommerce

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hayuwidyas/commerce-api/internal/models"
)

// productDTO 远端商品文档（只映射本服务消费的字段）
type productDTO struct {
	ID               uint           `json:"id"`
	Name             string         `json:"name"`
	Slug             string         `json:"slug"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"short_description"`
	SKU              string         `json:"sku"`
	Price            string         `json:"price"`
	RegularPrice     string         `json:"regular_price"`
	SalePrice        string         `json:"sale_price"`
	OnSale           bool           `json:"on_sale"`
	StockStatus      string         `json:"stock_status"`
	StockQuantity    *int           `json:"stock_quantity"`
	Featured         bool           `json:"featured"`
	AverageRating    string         `json:"average_rating"`
	RatingCount      int            `json:"rating_count"`
	Categories       []categoryDTO  `json:"categories"`
	Tags             []tagDTO       `json:"tags"`
	Images           []imageDTO     `json:"images"`
	Attributes       []attributeDTO `json:"attributes"`
}

type categoryDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Image       *imageDTO `json:"image"`
	Count       int       `json:"count"`
}

type tagDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type imageDTO struct {
	ID  uint   `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

type attributeDTO struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

// toModel 映射为规范模型；价格与评分解析失败按解码错误处理
func (d productDTO) toModel() (models.Product, error) {
	price, err := parseMoney(d.Price)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: product %d price %q", ErrDecode, d.ID, d.Price)
	}
	regularPrice, err := parseMoney(d.RegularPrice)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: product %d regular_price %q", ErrDecode, d.ID, d.RegularPrice)
	}
	var salePrice *models.Money
	if strings.TrimSpace(d.SalePrice) != "" {
		parsed, err := models.NewMoneyFromString(strings.TrimSpace(d.SalePrice))
		if err != nil {
			return models.Product{}, fmt.Errorf("%w: product %d sale_price %q", ErrDecode, d.ID, d.SalePrice)
		}
		salePrice = &parsed
	}

	rating := 0.0
	if s := strings.TrimSpace(d.AverageRating); s != "" {
		rating, err = strconv.ParseFloat(s, 64)
		if err != nil {
			return models.Product{}, fmt.Errorf("%w: product %d average_rating %q", ErrDecode, d.ID, d.AverageRating)
		}
	}

	categories := make(models.StringArray, 0, len(d.Categories))
	for _, c := range d.Categories {
		categories = append(categories, c.Name)
	}
	tags := make(models.StringArray, 0, len(d.Tags))
	for _, t := range d.Tags {
		tags = append(tags, t.Name)
	}
	images := make(models.StringArray, 0, len(d.Images))
	for _, img := range d.Images {
		images = append(images, img.Src)
	}
	attributes := make(models.AttributeMap, len(d.Attributes))
	for _, a := range d.Attributes {
		attributes[a.Name] = append([]string(nil), a.Options...)
	}

	return models.Product{
		ID:               d.ID,
		Name:             d.Name,
		Slug:             d.Slug,
		Description:      d.Description,
		ShortDescription: d.ShortDescription,
		SKU:              d.SKU,
		Price:            price,
		RegularPrice:     regularPrice,
		SalePrice:        salePrice,
		OnSale:           d.OnSale,
		StockStatus:      d.StockStatus,
		StockQuantity:    d.StockQuantity,
		Categories:       categories,
		Tags:             tags,
		Images:           images,
		Featured:         d.Featured,
		AverageRating:    rating,
		RatingCount:      d.RatingCount,
		Attributes:       attributes,
	}, nil
}

func (d categoryDTO) toModel() models.Category {
	image := ""
	if d.Image != nil {
		image = d.Image.Src
	}
	return models.Category{
		ID:          d.ID,
		Name:        d.Name,
		Slug:        d.Slug,
		Description: d.Description,
		Image:       image,
		Count:       d.Count,
	}
}

func parseMoney(s string) (models.Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.NewMoneyFromInt(0), nil
	}
	return models.NewMoneyFromString(s)
}
