// Package forecaster sequences a search: resolve the city, fetch the
// current conditions, derive the display values and the 3-day outlook,
// and publish one immutable view state.
package forecaster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Sigge1511/AuroraForecast-MS/internal/aurora"
	"github.com/Sigge1511/AuroraForecast-MS/internal/logger"
	"github.com/Sigge1511/AuroraForecast-MS/internal/models"
)

// ErrBusy is returned while another search is still in flight. The new
// search is dropped, not queued.
var ErrBusy = errors.New("a search is already in progress")

// ErrEmptyCity is returned for blank input, before any network call.
var ErrEmptyCity = errors.New("city name is empty")

// ErrCityNotFound is returned when the resolver has no match.
var ErrCityNotFound = errors.New("could not find city")

// WeatherClient is the remote-data surface the orchestrator needs.
type WeatherClient interface {
	ForecastForLocation(ctx context.Context, city string, lat, lon float64) models.AuroraForecast
	ThreeDayForecast(ctx context.Context, latitude float64) []models.ForecastDay
	RecentAlerts(ctx context.Context) []models.SpaceWeatherAlert
}

// LocationResolver maps a city name to coordinates; nil means no match.
type LocationResolver interface {
	Resolve(ctx context.Context, cityName string) *models.SelectedLocation
}

// ViewState is the complete display state, recomputed wholesale on each
// successful search and never patched incrementally.
type ViewState struct {
	CityName            string                     `json:"city_name"`
	LocationInfo        string                     `json:"location_info"`
	KpIndex             float64                    `json:"kp_index"`
	Probability         int                        `json:"probability"`
	DisplayProbability  float64                    `json:"display_probability"`
	ProbabilityLabel    string                     `json:"probability_label"`
	ActivityLevel       string                     `json:"activity_level"`
	ActivityDescription string                     `json:"activity_description"`
	ArcFilled           float64                    `json:"arc_filled"`
	ArcGap              float64                    `json:"arc_gap"`
	Forecast            []models.ForecastDay       `json:"forecast"`
	Alerts              []models.SpaceWeatherAlert `json:"alerts,omitempty"`
	DataLoaded          bool                       `json:"data_loaded"`
	ErrorMessage        string                     `json:"error_message,omitempty"`
	UpdatedAt           time.Time                  `json:"updated_at"`
}

// Orchestrator owns the single-flight search guard and the view state.
type Orchestrator struct {
	weather  WeatherClient
	resolver LocationResolver
	log      *logger.Logger
	clock    clockwork.Clock
	onUpdate func(ViewState)

	// busy is the single-flight guard: TryLock refuses a second search
	// while one is running.
	busy sync.Mutex

	mu    sync.RWMutex
	state ViewState
}

// New creates an orchestrator. onUpdate may be nil; when set it receives
// every published view state.
func New(weather WeatherClient, resolver LocationResolver, onUpdate func(ViewState)) *Orchestrator {
	return &Orchestrator{
		weather:  weather,
		resolver: resolver,
		log:      logger.GetGlobalLogger().WithComponent("forecaster"),
		clock:    clockwork.NewRealClock(),
		onUpdate: onUpdate,
	}
}

// SetClock swaps the time source. Pass nil to reset to real time.
func (o *Orchestrator) SetClock(c clockwork.Clock) {
	if c == nil {
		o.clock = clockwork.NewRealClock()
		return
	}
	o.clock = c
}

// Snapshot returns a copy of the current view state.
func (o *Orchestrator) Snapshot() ViewState {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return copyState(o.state)
}

// Search runs the full pipeline for a city. It returns the resulting
// view state and one of the sentinel errors for the caller to map; the
// user-facing message is also recorded on the state. A failed search
// leaves the previously displayed data untouched.
func (o *Orchestrator) Search(ctx context.Context, cityName string) (ViewState, error) {
	if !o.busy.TryLock() {
		o.log.Info("search rejected, another search is in flight", logger.Fields{"city": cityName})
		return o.Snapshot(), ErrBusy
	}
	defer o.busy.Unlock()

	if strings.TrimSpace(cityName) == "" {
		return o.failWith("Enter a city name"), ErrEmptyCity
	}

	// Entering Busy: clear the prior error and mark data as stale.
	o.mutate(func(s *ViewState) {
		s.ErrorMessage = ""
		s.DataLoaded = false
	})

	o.log.Infof("searching forecast for %q", cityName)

	location := o.resolver.Resolve(ctx, cityName)
	if location == nil {
		return o.failWith(fmt.Sprintf("Could not find city: %s", cityName)),
			fmt.Errorf("%w: %s", ErrCityNotFound, cityName)
	}

	current := o.weather.ForecastForLocation(ctx, location.CityName, location.Latitude, location.Longitude)

	display := aurora.DisplayProbability(current.KpIndex, location.Latitude)
	filled, gap := aurora.ArcFill(display)

	forecast := o.weather.ThreeDayForecast(ctx, location.Latitude)
	alerts := o.weather.RecentAlerts(ctx)

	state := ViewState{
		CityName:            location.CityName,
		LocationInfo:        fmt.Sprintf("%s (%.2f°, %.2f°)", location.CityName, location.Latitude, location.Longitude),
		KpIndex:             current.KpIndex,
		Probability:         current.Probability,
		DisplayProbability:  display,
		ProbabilityLabel:    aurora.ProbabilityLabel(display),
		ActivityLevel:       current.ActivityLevel,
		ActivityDescription: aurora.ActivityDescription(display),
		ArcFilled:           filled,
		ArcGap:              gap,
		Forecast:            forecast,
		Alerts:              alerts,
		DataLoaded:          true,
		UpdatedAt:           o.clock.Now().UTC(),
	}

	o.publish(state)
	o.log.Infof("forecast ready for %s: Kp %.2f, %s", location.CityName, state.KpIndex, state.ActivityLevel)

	return copyState(state), nil
}

// failWith records a user-facing error message on the state, keeping
// the rest of the display untouched, and publishes the result.
func (o *Orchestrator) failWith(message string) ViewState {
	return o.mutate(func(s *ViewState) {
		s.ErrorMessage = message
		s.DataLoaded = false
	})
}

func (o *Orchestrator) mutate(fn func(*ViewState)) ViewState {
	o.mu.Lock()
	fn(&o.state)
	state := copyState(o.state)
	o.mu.Unlock()

	if o.onUpdate != nil {
		o.onUpdate(state)
	}
	return state
}

func (o *Orchestrator) publish(state ViewState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()

	if o.onUpdate != nil {
		o.onUpdate(copyState(state))
	}
}

// copyState deep-copies the slices so a published state stays immutable.
func copyState(s ViewState) ViewState {
	out := s
	if s.Forecast != nil {
		out.Forecast = append([]models.ForecastDay(nil), s.Forecast...)
	}
	if s.Alerts != nil {
		out.Alerts = append([]models.SpaceWeatherAlert(nil), s.Alerts...)
	}
	return out
}
