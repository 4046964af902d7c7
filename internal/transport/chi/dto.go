package chi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// maxTake bounds every take parameter accepted from callers.
const maxTake = 50

type rangeDTO struct {
	Min *float64 `json:"min"`
	Max *float64 `json:"max"`
}

func (r rangeDTO) toDomain() domain.Range { return domain.Range{Min: r.Min, Max: r.Max} }

type coordinatesDTO struct {
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lon" validate:"longitude"`
}

type locationDTO struct {
	Query       string          `json:"query"`
	Coordinates *coordinatesDTO `json:"coordinates"`
}

type profileDTO struct {
	Interests    []string `json:"interests" validate:"required,min=1,dive,required"`
	Demographics struct {
		Age    string `json:"age"`
		Gender string `json:"gender"`
	} `json:"demographics"`
	Location    locationDTO `json:"location"`
	Preferences struct {
		PriceLevel rangeDTO `json:"price_level"`
		Popularity rangeDTO `json:"popularity"`
	} `json:"preferences"`
}

func (p profileDTO) toDomain() domain.TasteProfile {
	out := domain.TasteProfile{
		Interests:    p.Interests,
		Demographics: domain.Demographics{Age: p.Demographics.Age, Gender: p.Demographics.Gender},
		Location:     domain.Location{Query: p.Location.Query},
		Preferences: domain.Preferences{
			PriceLevel: p.Preferences.PriceLevel.toDomain(),
			Popularity: p.Preferences.Popularity.toDomain(),
		},
	}
	if c := p.Location.Coordinates; c != nil {
		out.Location.Coordinates = &domain.Coordinates{Latitude: c.Latitude, Longitude: c.Longitude}
	}
	return out
}

type projectContextDTO struct {
	ProjectType  string `json:"project_type"`
	GoalCategory string `json:"goal_category"`
	UserLocation string `json:"user_location"`
	Timeframe    string `json:"timeframe"`
	Budget       string `json:"budget" validate:"omitempty,oneof=low medium high"`
}

func (c projectContextDTO) toDomain() domain.ProjectContext {
	return domain.ProjectContext{
		ProjectType:  c.ProjectType,
		GoalCategory: c.GoalCategory,
		UserLocation: c.UserLocation,
		Timeframe:    c.Timeframe,
		Budget:       c.Budget,
	}
}

// goalRequest is the body of goal enhancement and component generation.
type goalRequest struct {
	Goal    string            `json:"goal" validate:"required"`
	Profile profileDTO        `json:"profile"`
	Context projectContextDTO `json:"context"`
}

type discoverRequest struct {
	Interests    []string          `json:"interests" validate:"required,min=1,dive,required"`
	TargetDomain string            `json:"target_domain" validate:"required"`
	Context      projectContextDTO `json:"context"`
}

type compareRequest struct {
	GroupA     []string `json:"group_a" validate:"required,min=1,dive,required"`
	GroupB     []string `json:"group_b" validate:"required,min=1,dive,required"`
	FilterType string   `json:"filter_type"`
	Take       int      `json:"take" validate:"gte=0,lte=50"`
}

// paging reads take and page from the query string.
func paging(q url.Values) (take, page int, err error) {
	if take, err = queryInt(q, "take"); err != nil {
		return 0, 0, err
	}
	if take > maxTake {
		return 0, 0, fmt.Errorf("%w: take must be less than or equal to %d", domain.ErrInvalidRequest, maxTake)
	}
	if page, err = queryInt(q, "page"); err != nil {
		return 0, 0, err
	}
	return take, page, nil
}

func queryInt(q url.Values, key string) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", domain.ErrInvalidRequest, key)
	}
	return n, nil
}

func queryList(q url.Values, key string) []string {
	raw := q.Get(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func entityTypes(raw []string) []domain.EntityType {
	if len(raw) == 0 {
		return nil
	}
	out := make([]domain.EntityType, len(raw))
	for i, s := range raw {
		out[i] = domain.EntityType(s)
	}
	return out
}
