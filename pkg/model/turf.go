package model

// Turf is a bookable resource from the catalog. Catalog entries are
// read-only at runtime; mutation happens out of band.
type Turf struct {
	ID           string   `json:"id" bson:"_id"`
	Name         string   `json:"name" bson:"name" validate:"required,min=2,max=100"`
	City         string   `json:"city" bson:"city" validate:"required"`
	Location     string   `json:"location" bson:"location" validate:"required"`
	PricePerHour int64    `json:"pricePerHour" bson:"price_per_hour" validate:"required,gt=0"`
	Images       []string `json:"images" bson:"images" validate:"omitempty,dive,url"`
	Amenities    []string `json:"amenities" bson:"amenities"`
	Rating       float64  `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	Surface      string   `json:"surface" bson:"surface"`
}

// TurfSummary is the subset of catalog fields embedded into booking
// listings so clients can render a reservation without a second lookup.
type TurfSummary struct {
	Name     string `json:"name"`
	Location string `json:"location"`
	City     string `json:"city"`
}

func (t *Turf) Summary() *TurfSummary {
	if t == nil {
		return nil
	}
	return &TurfSummary{
		Name:     t.Name,
		Location: t.Location,
		City:     t.City,
	}
}
