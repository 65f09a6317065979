package alerts

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/obsidianstack/schedhealth/internal/config"
	"github.com/obsidianstack/schedhealth/internal/health"
)

const defaultSeverity = "warning"

// Alert is one rule whose condition held for a report.
type Alert struct {
	RuleName  string  `json:"rule_name" yaml:"rule_name"`
	Severity  string  `json:"severity" yaml:"severity"`
	Condition string  `json:"condition" yaml:"condition"`
	Value     float64 `json:"value" yaml:"value"`
	Message   string  `json:"message" yaml:"message"`
}

type rule struct {
	name     string
	severity string
	raw      string
	cond     condition
}

// Engine evaluates a fixed rule set against reports. Evaluate is stateless;
// Track additionally remembers which rules are firing so watch mode can log
// fire and resolve transitions once.
//
// Engine is safe for concurrent use.
type Engine struct {
	rules []rule

	mu     sync.Mutex
	firing map[string]bool
}

// New compiles the configured rules. An Engine with no rules is valid and
// never fires.
func New(cfg config.AlertsConfig) (*Engine, error) {
	e := &Engine{firing: make(map[string]bool)}
	seen := make(map[string]bool, len(cfg.Rules))
	for i, r := range cfg.Rules {
		if seen[r.Name] {
			return nil, fmt.Errorf("alerts: rules[%d] %q: duplicate rule name", i, r.Name)
		}
		seen[r.Name] = true
		c, err := parseCondition(r.Condition)
		if err != nil {
			return nil, fmt.Errorf("alerts: rules[%d] %q: %w", i, r.Name, err)
		}
		sev := r.Severity
		if sev == "" {
			sev = defaultSeverity
		}
		e.rules = append(e.rules, rule{name: r.Name, severity: sev, raw: r.Condition, cond: c})
	}
	return e, nil
}

// Evaluate returns the alerts whose conditions hold for rep, in rule order.
func (e *Engine) Evaluate(rep health.Report) []Alert {
	var out []Alert
	for _, r := range e.rules {
		fires, value := r.cond.eval(rep)
		if !fires {
			continue
		}
		out = append(out, Alert{
			RuleName:  r.name,
			Severity:  r.severity,
			Condition: r.raw,
			Value:     value,
			Message:   fmt.Sprintf("[%s] %s: %s (value %.2f)", r.severity, r.name, r.raw, value),
		})
	}
	return out
}

// Track evaluates rep like Evaluate and logs rules that started or stopped
// firing since the previous call.
func (e *Engine) Track(rep health.Report) []Alert {
	fired := e.Evaluate(rep)

	now := make(map[string]bool, len(fired))
	for _, a := range fired {
		now[a.RuleName] = true
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, a := range fired {
		if !e.firing[a.RuleName] {
			slog.Warn("alert fired",
				"rule", a.RuleName,
				"severity", a.Severity,
				"value", a.Value,
			)
		}
	}
	for name := range e.firing {
		if !now[name] {
			slog.Info("alert resolved", "rule", name)
		}
	}
	e.firing = now
	return fired
}

// Firing returns the names of the rules that fired on the last Track call.
func (e *Engine) Firing() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.firing))
	for _, r := range e.rules {
		if e.firing[r.name] {
			out = append(out, r.name)
		}
	}
	return out
}
