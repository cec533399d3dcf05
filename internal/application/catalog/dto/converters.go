package dto

import "subhub/internal/domain/catalog"

func ToProductDTO(product *catalog.Product, descriptionHTML string) *ProductDTO {
	if product == nil {
		return nil
	}

	return &ProductDTO{
		ID:                product.ID(),
		Name:              product.Name(),
		Slug:              product.Slug(),
		Description:       product.Description(),
		DescriptionHTML:   descriptionHTML,
		ShortDescription:  product.ShortDescription(),
		Features:          product.Features(),
		LogoURL:           product.LogoURL(),
		WebsiteURL:        product.WebsiteURL(),
		StarterPrice:      product.StarterPrice(),
		ProfessionalPrice: product.ProfessionalPrice(),
		EnterprisePrice:   product.EnterprisePrice(),
		IsActive:          product.IsActive(),
		IsFeatured:        product.IsFeatured(),
		Category:          product.Category(),
		Tags:              product.Tags(),
		CreatedAt:         product.CreatedAt(),
		UpdatedAt:         product.UpdatedAt(),
	}
}
