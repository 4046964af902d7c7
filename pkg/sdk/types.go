package tastegraph

import (
	"github.com/kailas-cloud/tastegraph/internal/domain"
	componentuc "github.com/kailas-cloud/tastegraph/internal/usecase/component"
	crossdomainuc "github.com/kailas-cloud/tastegraph/internal/usecase/crossdomain"
	goaluc "github.com/kailas-cloud/tastegraph/internal/usecase/goal"
)

// Request inputs.
type (
	TasteProfile   = domain.TasteProfile
	ProjectContext = domain.ProjectContext
	Demographics   = domain.Demographics
	Location       = domain.Location
	Coordinates    = domain.Coordinates
	Preferences    = domain.Preferences
	Range          = domain.Range
	SearchOptions  = domain.SearchOptions
	InsightQuery   = domain.InsightQuery
	NarrativeInput = domain.NarrativeInput
)

// Results.
type (
	Entity             = domain.Entity
	EntityType         = domain.EntityType
	InsightResult      = domain.InsightResult
	SurpriseConnection = domain.SurpriseConnection
	DomainBridge       = domain.DomainBridge
	EnhancedGoal       = goaluc.EnhancedGoal
	Project            = goaluc.Project
	Components         = componentuc.Components
	Discovery          = crossdomainuc.Discovery
)

// Entity types.
const (
	EntityPlace       = domain.EntityPlace
	EntityBrand       = domain.EntityBrand
	EntityBook        = domain.EntityBook
	EntityPodcast     = domain.EntityPodcast
	EntityArtist      = domain.EntityArtist
	EntityDestination = domain.EntityDestination
	EntityMovie       = domain.EntityMovie
)
