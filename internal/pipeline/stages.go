package pipeline

import (
	"errors"
	"fmt"
	"sort"

	"github.com/heimdalr/dag"

	"github.com/Veraticus/sweep/internal/model"
)

// ErrUnknownStage is returned when a stage name is not recognized.
var ErrUnknownStage = errors.New("unknown stage")

// Stage names one transform applied to every record of a chunk.
type Stage string

// Pipeline stages.
const (
	StageCoerce    Stage = "coerce"
	StageGeography Stage = "geography"
	StageBrand     Stage = "brand"
	StageSize      Stage = "size"
	StageFormat    Stage = "format"
	StageKOL       Stage = "kol"
	StageGift      Stage = "gift"
	StageRegion    Stage = "region"
	StageDatetime  Stage = "datetime"
	StagePeriod    Stage = "period"
	StageFSP       Stage = "fsp"
	StageUSD       Stage = "usd"
	StageVoucher   Stage = "voucher"
)

// AllStages lists every stage in declaration order, which breaks ties
// between stages at the same dependency depth.
var AllStages = []Stage{
	StageCoerce,
	StageGeography,
	StageBrand,
	StageSize,
	StageFormat,
	StageKOL,
	StageGift,
	StageRegion,
	StageDatetime,
	StagePeriod,
	StageFSP,
	StageUSD,
	StageVoucher,
}

// stageDeps lists direct dependencies. Every stage other than coerce
// depends on coerce.
var stageDeps = map[Stage][]Stage{
	StageFormat: {StageSize},
	StagePeriod: {StageDatetime},
}

// stageColumns lists the derived columns each stage populates.
var stageColumns = map[Stage][]string{
	StageGeography: {model.ColumnCleanProvince},
	StageBrand:     {model.ColumnBrand},
	StageSize:      {model.ColumnSize},
	StageFormat:    {model.ColumnFormat},
	StageKOL:       {model.ColumnKOL},
	StageGift:      {model.ColumnGift},
	StageRegion:    {model.ColumnWarehouseRegion},
	StageDatetime:  {model.ColumnCreatedDate, model.ColumnCreatedYearMonth},
	StagePeriod:    {model.ColumnPeriod},
	StageFSP:       {model.ColumnFSP},
	StageUSD:       {model.ColumnSubtotalUSD},
	StageVoucher:   {model.ColumnVoucher},
}

// ParseStages converts stage names, rejecting unknown ones.
func ParseStages(names []string) ([]Stage, error) {
	known := make(map[Stage]struct{}, len(AllStages))
	for _, s := range AllStages {
		known[s] = struct{}{}
	}

	stages := make([]Stage, 0, len(names))
	for _, name := range names {
		s := Stage(name)
		if _, ok := known[s]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, name)
		}
		stages = append(stages, s)
	}
	return stages, nil
}

// Plan resolves the requested stages, plus everything they depend on, into
// execution order. An empty request plans every stage.
func Plan(requested []Stage) ([]Stage, error) {
	if len(requested) == 0 {
		requested = AllStages
	}

	graph := dag.NewDAG()
	rank := make(map[Stage]int, len(AllStages))
	for i, s := range AllStages {
		rank[s] = i
		if err := graph.AddVertexByID(string(s), string(s)); err != nil {
			return nil, fmt.Errorf("failed to add stage %s: %w", s, err)
		}
	}

	for _, s := range AllStages {
		deps := stageDeps[s]
		if s != StageCoerce {
			deps = append([]Stage{StageCoerce}, deps...)
		}
		for _, dep := range deps {
			if err := graph.AddEdge(string(dep), string(s)); err != nil {
				return nil, fmt.Errorf("invalid stage dependency %s → %s: %w", dep, s, err)
			}
		}
	}

	depth := make(map[Stage]int)
	for _, s := range requested {
		if _, ok := rank[s]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownStage, s)
		}

		ancestors, err := graph.GetAncestors(string(s))
		if err != nil {
			return nil, fmt.Errorf("failed to resolve stage %s: %w", s, err)
		}
		depth[s] = len(ancestors)

		for id := range ancestors {
			dep := Stage(id)
			if _, seen := depth[dep]; seen {
				continue
			}
			depAncestors, err := graph.GetAncestors(id)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve stage %s: %w", dep, err)
			}
			depth[dep] = len(depAncestors)
		}
	}

	// An ancestor always has strictly fewer ancestors than its descendant,
	// so sorting by ancestor count is a topological order.
	plan := make([]Stage, 0, len(depth))
	for s := range depth {
		plan = append(plan, s)
	}
	sort.Slice(plan, func(i, j int) bool {
		if depth[plan[i]] != depth[plan[j]] {
			return depth[plan[i]] < depth[plan[j]]
		}
		return rank[plan[i]] < rank[plan[j]]
	})

	return plan, nil
}

// DerivedColumns returns the columns populated by a plan, in
// model.DerivedColumns order.
func DerivedColumns(plan []Stage) []string {
	populated := make(map[string]struct{})
	for _, s := range plan {
		for _, c := range stageColumns[s] {
			populated[c] = struct{}{}
		}
	}

	out := make([]string, 0, len(populated))
	for _, c := range model.DerivedColumns {
		if _, ok := populated[c]; ok {
			out = append(out, c)
		}
	}
	return out
}

func hasStage(plan []Stage, s Stage) bool {
	for _, p := range plan {
		if p == s {
			return true
		}
	}
	return false
}
