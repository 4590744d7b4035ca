package queries

import (
	"context"
	"strings"
	"time"

	"ski-stays/internal/infra/upstream"
	"ski-stays/internal/pkg/cache"
	"ski-stays/internal/pkg/config"
	"ski-stays/internal/pkg/errs"

	"github.com/jinzhu/copier"
)

const (
	DefaultReviewLimit = 20
	MaxReviewLimit     = 100
)

type HotelSummaryView struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Address     string  `json:"address"`
	City        string  `json:"city"`
	Country     string  `json:"country"`
	Stars       float64 `json:"stars"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
	MainPhoto   string  `json:"mainPhoto"`
	Thumbnail   string  `json:"thumbnail"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
}

type RoomView struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	MaxOccupancy int      `json:"maxOccupancy"`
	Photos       []string `json:"photos"`
}

type HotelView struct {
	ID                   string     `json:"id"`
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	ImportantInformation string     `json:"importantInformation"`
	Address              string     `json:"address"`
	City                 string     `json:"city"`
	Country              string     `json:"country"`
	Zip                  string     `json:"zip"`
	StarRating           float64    `json:"starRating"`
	Rating               float64    `json:"rating"`
	ReviewCount          int        `json:"reviewCount"`
	Latitude             float64    `json:"latitude"`
	Longitude            float64    `json:"longitude"`
	MainPhoto            string     `json:"mainPhoto"`
	Images               []string   `json:"images"`
	Facilities           []string   `json:"facilities"`
	Rooms                []RoomView `json:"rooms"`
	CheckinStart         string     `json:"checkinStart"`
	Checkout             string     `json:"checkout"`
}

type ReviewView struct {
	AverageScore float64 `json:"averageScore"`
	Name         string  `json:"name"`
	Country      string  `json:"country"`
	Type         string  `json:"type"`
	Date         string  `json:"date"`
	Headline     string  `json:"headline"`
	Language     string  `json:"language"`
	Pros         string  `json:"pros"`
	Cons         string  `json:"cons"`
}

type HotelQueries interface {
	SearchHotels(ctx context.Context, countryCode, city string, limit int) ([]HotelSummaryView, error)
	GetHotelDetails(ctx context.Context, hotelID string) (*HotelView, error)
	GetReviews(ctx context.Context, hotelID string, limit int) ([]ReviewView, error)
}

// HotelDirectory is the slice of the inventory API that serves static hotel content.
type HotelDirectory interface {
	SearchHotels(ctx context.Context, countryCode, city string, limit int) ([]upstream.Hotel, error)
	GetHotel(ctx context.Context, hotelID string) (*upstream.HotelDetail, error)
	GetReviews(ctx context.Context, hotelID string, limit int) ([]upstream.Review, error)
}

type hotelQueriesImpl struct {
	directory  HotelDirectory
	cache      *cache.Cache
	search     config.SearchConfig
	hotelsTTL  time.Duration
	detailTTL  time.Duration
	reviewsTTL time.Duration
}

func NewHotelQueries(directory HotelDirectory, c *cache.Cache, cfg config.Config) HotelQueries {
	return &hotelQueriesImpl{
		directory:  directory,
		cache:      c,
		search:     cfg.Search,
		hotelsTTL:  cfg.Cache.HotelsTTL,
		detailTTL:  cfg.Cache.DetailTTL,
		reviewsTTL: cfg.Cache.ReviewsTTL,
	}
}

func (q *hotelQueriesImpl) SearchHotels(ctx context.Context, countryCode, city string, limit int) ([]HotelSummaryView, error) {
	countryCode = strings.ToUpper(strings.TrimSpace(countryCode))
	if countryCode == "" {
		countryCode = q.search.CountryCode
	}
	city = strings.TrimSpace(city)
	if city == "" {
		city = q.search.DefaultCity
	}
	if limit <= 0 || limit > q.search.HotelLimit {
		limit = q.search.HotelLimit
	}

	key := cache.Key("hotels", countryCode, strings.ToLower(city), limit)
	return cache.WithCache(ctx, q.cache, "hotels", key, q.hotelsTTL, func(ctx context.Context) ([]HotelSummaryView, error) {
		hotels, err := q.directory.SearchHotels(ctx, countryCode, city, limit)
		if err != nil {
			return nil, err
		}
		views := make([]HotelSummaryView, 0, len(hotels))
		if err := copier.Copy(&views, &hotels); err != nil {
			return nil, errs.Wrap(err, "failed to map hotels")
		}
		return views, nil
	})
}

func (q *hotelQueriesImpl) GetHotelDetails(ctx context.Context, hotelID string) (*HotelView, error) {
	key := cache.Key("hotel", hotelID)
	view, err := cache.WithCache(ctx, q.cache, "hotel", key, q.detailTTL, func(ctx context.Context) (*HotelView, error) {
		detail, err := q.directory.GetHotel(ctx, hotelID)
		if err != nil {
			return nil, err
		}
		return toHotelView(detail), nil
	})
	if err != nil {
		if upstream.IsNotFound(err) {
			return nil, errs.Mark(err, errs.ErrHotelNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (q *hotelQueriesImpl) GetReviews(ctx context.Context, hotelID string, limit int) ([]ReviewView, error) {
	if limit <= 0 {
		limit = DefaultReviewLimit
	}
	limit = min(limit, MaxReviewLimit)

	key := cache.Key("reviews", hotelID, limit)
	return cache.WithCache(ctx, q.cache, "reviews", key, q.reviewsTTL, func(ctx context.Context) ([]ReviewView, error) {
		reviews, err := q.directory.GetReviews(ctx, hotelID, limit)
		if err != nil {
			if upstream.IsNotFound(err) {
				return nil, errs.Mark(err, errs.ErrHotelNotFound)
			}
			return nil, err
		}
		views := make([]ReviewView, 0, len(reviews))
		if err := copier.Copy(&views, &reviews); err != nil {
			return nil, errs.Wrap(err, "failed to map reviews")
		}
		return views, nil
	})
}

func toHotelView(d *upstream.HotelDetail) *HotelView {
	v := &HotelView{
		ID:                   d.ID,
		Name:                 d.Name,
		Description:          d.HotelDescription,
		ImportantInformation: d.ImportantInformation,
		Address:              d.Address,
		City:                 d.City,
		Country:              d.Country,
		Zip:                  d.Zip,
		StarRating:           d.StarRating,
		Rating:               d.Rating,
		ReviewCount:          d.ReviewCount,
		Latitude:             d.Location.Latitude,
		Longitude:            d.Location.Longitude,
		MainPhoto:            d.MainPhoto,
		Images:               make([]string, 0, len(d.HotelImages)),
		Facilities:           d.HotelFacilities,
		Rooms:                make([]RoomView, 0, len(d.Rooms)),
		CheckinStart:         d.CheckinCheckoutTimes.CheckinStart,
		Checkout:             d.CheckinCheckoutTimes.Checkout,
	}
	if v.Facilities == nil {
		v.Facilities = []string{}
	}
	for _, img := range d.HotelImages {
		// default image first
		if img.DefaultImage {
			v.Images = append([]string{img.URL}, v.Images...)
			continue
		}
		v.Images = append(v.Images, img.URL)
	}
	if v.MainPhoto == "" && len(v.Images) > 0 {
		v.MainPhoto = v.Images[0]
	}
	for _, r := range d.Rooms {
		room := RoomView{
			ID:           r.ID,
			Name:         r.RoomName,
			Description:  r.Description,
			MaxOccupancy: r.MaxOccupancy,
			Photos:       make([]string, 0, len(r.Photos)),
		}
		for _, p := range r.Photos {
			room.Photos = append(room.Photos, p.URL)
		}
		v.Rooms = append(v.Rooms, room)
	}
	return v
}
