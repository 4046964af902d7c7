package crossdomain

import (
	"context"
	"fmt"
	"strings"

	"github.com/kailas-cloud/tastegraph/internal/domain"
)

// BridgeInput is what a BridgeSource sees of one connection run.
type BridgeInput struct {
	Interests    []string
	UserEntities []domain.Entity
	TargetDomain string
	TargetType   domain.EntityType
	Targets      []domain.Entity
}

// interestLabel joins the interests for use in bridge insights.
func (in BridgeInput) interestLabel() string {
	labels := in.Interests
	if len(labels) == 0 {
		labels = make([]string, 0, len(in.UserEntities))
		for _, e := range in.UserEntities {
			labels = append(labels, e.Name)
		}
	}
	if len(labels) == 0 {
		return "your interests"
	}
	return strings.Join(labels, ", ")
}

// SyntheticBridges emits one templated bridge without calling the taste graph.
// The comparison endpoint rejects this deployment's credentials, so this is the default source.
type SyntheticBridges struct{}

// Bridges returns exactly one bridge from the user's interests to the target domain.
func (SyntheticBridges) Bridges(_ context.Context, in BridgeInput) ([]domain.DomainBridge, error) {
	return []domain.DomainBridge{syntheticBridge(in)}, nil
}

func syntheticBridge(in BridgeInput) domain.DomainBridge {
	interests := in.interestLabel()
	return domain.DomainBridge{
		Domain1:        domain.UserInterestsDomain,
		Domain2:        in.TargetDomain,
		BridgeEntities: []domain.Entity{},
		Insights: []string{
			fmt.Sprintf("People who enjoy %s often discover unexpected value in %s", interests, in.TargetDomain),
			fmt.Sprintf("Cultural patterns from %s translate into distinctive %s preferences", interests, in.TargetDomain),
			fmt.Sprintf("Cross-domain exploration between %s and %s can surface novel opportunities",
				interests, in.TargetDomain),
		},
	}
}

// CompareBridgeSource builds the bridge from a real comparison between the user's concrete
// entities and the retrieved target entities.
type CompareBridgeSource struct {
	compare Comparer
	take    int
}

// NewCompareBridgeSource creates a comparison-backed bridge source.
func NewCompareBridgeSource(compare Comparer, take int) *CompareBridgeSource {
	return &CompareBridgeSource{compare: compare, take: take}
}

// Bridges compares the two groups and returns one bridge carrying what they share.
// Without a concrete entity on either side there is nothing to compare and no bridge is returned.
func (s *CompareBridgeSource) Bridges(ctx context.Context, in BridgeInput) ([]domain.DomainBridge, error) {
	users, _ := domain.SplitByKind(in.UserEntities)
	targets, _ := domain.SplitByKind(in.Targets)
	groupA := domain.IDs(users, maxTagSignals)
	groupB := domain.IDs(targets, maxTagSignals)
	if len(groupA) == 0 || len(groupB) == 0 {
		return []domain.DomainBridge{}, nil
	}

	cmp, err := s.compare.CompareEntities(ctx, groupA, groupB, domain.CompareOptions{Take: s.take})
	if err != nil {
		return nil, fmt.Errorf("compare entities: %w", err)
	}

	bridge := domain.DomainBridge{
		Domain1:        domain.UserInterestsDomain,
		Domain2:        in.TargetDomain,
		BridgeEntities: cmp.Shared,
		Insights:       make([]string, 0, len(cmp.Shared)),
	}
	for _, e := range cmp.Shared {
		bridge.Insights = append(bridge.Insights,
			fmt.Sprintf("%s is shared between %s and %s", e.Name, in.interestLabel(), in.TargetDomain))
	}
	return []domain.DomainBridge{bridge}, nil
}
