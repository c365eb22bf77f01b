package service

import (
	"strings"
	"time"

	"github.com/e3lany/e3lany_api/internal/models"
	"github.com/e3lany/e3lany_api/internal/utils"
)

// Display-name fallbacks for sellers without a name. The two endpoints
// historically use different literals; both are kept verbatim.
const (
	searchSellerFallback  = "مستخدم"
	listingSellerFallback = "مستخدم مجهول"
)

// toSearchAd flattens a joined row into the search/autocomplete shape:
// relations collapse to slugs, postedDate carries the creation timestamp.
func toSearchAd(ad *models.AdWithRelations) models.SearchAd {
	seller := searchSellerFallback
	if ad.SellerName != nil && *ad.SellerName != "" {
		seller = *ad.SellerName
	}
	return models.SearchAd{
		ID:            ad.ID,
		Title:         ad.Title,
		Description:   ad.Description,
		Price:         ad.Price,
		Currency:      ad.Currency,
		Location:      ad.Location,
		CategoryID:    ad.CategoryID,
		SubcategoryID: ad.SubcategoryID,
		Category:      ad.CategorySlug,
		Subcategory:   ad.SubcategorySlug,
		Image:         ad.Image,
		Images:        imageList(ad.Images),
		PostedDate:    ad.CreatedAt.Format(time.RFC3339),
		Seller:        seller,
		SellerImage:   ad.SellerImage,
		SellerID:      ad.SellerID,
		Featured:      ad.Featured,
		Condition:     ad.Condition,
		Views:         ad.Views,
		IsNegotiable:  ad.IsNegotiable,
		Phone:         ad.Phone,
		Status:        ad.Status,
		CreatedAt:     ad.CreatedAt,
		UpdatedAt:     ad.UpdatedAt,
	}
}

// toListedAd flattens a joined row into the listing shape: postedDate is
// rendered as an Arabic relative-time string and condition is lower-cased
// for display while stored upper-cased.
func toListedAd(ad *models.AdWithRelations, now time.Time) models.ListedAd {
	seller := listingSellerFallback
	if ad.SellerName != nil && *ad.SellerName != "" {
		seller = *ad.SellerName
	}
	return models.ListedAd{
		ID:            ad.ID,
		Title:         ad.Title,
		Description:   ad.Description,
		Price:         ad.Price,
		Currency:      ad.Currency,
		Location:      ad.Location,
		CategoryID:    ad.CategoryID,
		SubcategoryID: ad.SubcategoryID,
		Category:      ad.CategorySlug,
		Subcategory:   ad.SubcategorySlug,
		Image:         ad.Image,
		Images:        imageList(ad.Images),
		PostedDate:    utils.FormatRelativeTime(now, ad.PostedDate),
		Seller:        seller,
		SellerImage:   ad.SellerImage,
		SellerID:      ad.SellerID,
		Featured:      ad.Featured,
		Condition:     strings.ToLower(string(ad.Condition)),
		Views:         ad.Views,
		IsNegotiable:  ad.IsNegotiable,
		Phone:         ad.Phone,
	}
}

func imageList(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
