package match

import (
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/mabry1985/albion-killbot/internal/battle"
)

// Filter wraps a compiled CEL program applied on top of entity matching.
// Guilds use it to restrict notifications further, e.g.
// "totalFame > 50000 || totalKills >= 10". When disabled, Eval always
// returns true.
type Filter struct {
	prog    cel.Program
	enabled bool
}

// NewFilter compiles a CEL expression into a Filter. An empty expression
// yields a disabled (match-all) filter.
func NewFilter(expr string) (Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return Filter{enabled: false}, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("totalFame", cel.IntType),
		cel.Variable("totalKills", cel.IntType),
		// id -> display-name maps, so expressions can test membership or names
		cel.Variable("players", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("guilds", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("alliances", cel.MapType(cel.StringType, cel.StringType)),
	)
	if err != nil {
		return Filter{}, err
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return Filter{}, iss.Err()
	}
	prog, err := env.Program(ast)
	if err != nil {
		return Filter{}, err
	}
	return Filter{prog: prog, enabled: true}, nil
}

// Eval evaluates the expression against a battle. Evaluation errors count as
// a non-match. When disabled, returns true.
func (f Filter) Eval(b battle.Battle) bool {
	if !f.enabled {
		return true
	}
	out, _, err := f.prog.Eval(map[string]any{
		"totalFame":  b.TotalFame,
		"totalKills": b.TotalKills,
		"players":    names(b.Players),
		"guilds":     names(b.Guilds),
		"alliances":  names(b.Alliances),
	})
	if err != nil {
		return false
	}
	v, ok := out.Value().(bool)
	return ok && v
}

// Apply returns the battles passing the filter, preserving order.
func (f Filter) Apply(battles []battle.Battle) []battle.Battle {
	if !f.enabled {
		return battles
	}
	var out []battle.Battle
	for _, b := range battles {
		if f.Eval(b) {
			out = append(out, b)
		}
	}
	return out
}

func names(participants map[string]battle.Participant) map[string]string {
	out := make(map[string]string, len(participants))
	for id, p := range participants {
		out[id] = p.Name
	}
	return out
}
