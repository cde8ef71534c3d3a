package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type target struct {
	Method   string `yaml:"method"`
	Path     string `yaml:"path"`
	Critical bool   `yaml:"critical"`
}

type targetFile struct {
	Targets []target `yaml:"targets"`
}

// defaultTargets are read-only endpoints safe to replay against production.
var defaultTargets = []target{
	{Method: http.MethodGet, Path: "/health", Critical: true},
	{Method: http.MethodGet, Path: "/api/sports", Critical: true},
	{Method: http.MethodGet, Path: "/api/type-exercises", Critical: true},
	{Method: http.MethodGet, Path: "/api/formulas", Critical: true},
	{Method: http.MethodGet, Path: "/api/metrics?limit=50"},
	{Method: http.MethodGet, Path: "/api/teams?limit=50"},
}

type comparison struct {
	Target            target
	BaselineStatus    int
	CandidateStatus   int
	StatusMatch       bool
	BodyMatch         bool
	Error             error
	DurationBaseline  time.Duration
	DurationCandidate time.Duration
}

var (
	compareBaseline  string
	compareCandidate string
	compareTargets   string
	compareTimeout   time.Duration
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Replay requests against two deployments and diff the responses",
	Long: `Replay requests against a baseline and a candidate deployment.

Status codes must match and bodies must be equal after JSON normalisation.
Any difference on a critical target makes the command fail.

Targets come from --targets (YAML or JSON) or a built-in read-only list:

  targets:
    - method: GET
      path: /api/metrics
      critical: true`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := defaultTargets
		if compareTargets != "" {
			loaded, err := loadTargets(compareTargets)
			if err != nil {
				return fmt.Errorf("load targets: %w", err)
			}
			targets = loaded
		}

		client := &http.Client{Timeout: compareTimeout}
		results := make([]comparison, 0, len(targets))
		for _, t := range targets {
			results = append(results, compareTarget(client, compareBaseline, compareCandidate, t))
		}

		breaking, optional := tally(results)
		printReport(cmd.OutOrStdout(), results)
		fmt.Fprintf(cmd.OutOrStdout(), "Breaking diffs: %d, Optional diffs: %d\n", breaking, optional)
		if breaking > 0 {
			return fmt.Errorf("%d breaking differences", breaking)
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVar(&compareBaseline, "baseline", "http://localhost:8080", "base URL of the reference deployment")
	compareCmd.Flags().StringVar(&compareCandidate, "candidate", "", "base URL of the deployment under test")
	compareCmd.Flags().StringVar(&compareTargets, "targets", "", "targets file")
	compareCmd.Flags().DurationVar(&compareTimeout, "timeout", 5*time.Second, "per-request timeout")
	_ = compareCmd.MarkFlagRequired("candidate")
}

func loadTargets(path string) ([]target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc targetFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Targets) == 0 {
		return nil, fmt.Errorf("no targets defined in %s", path)
	}
	return doc.Targets, nil
}

func tally(results []comparison) (breaking, optional int) {
	for _, res := range results {
		diff := res.Error != nil || !res.StatusMatch || !res.BodyMatch
		if !diff {
			continue
		}
		if res.Target.Critical {
			breaking++
		} else if res.Error == nil {
			optional++
		}
	}
	return breaking, optional
}

func compareTarget(client *http.Client, baseline, candidate string, tgt target) comparison {
	comp := comparison{Target: tgt}
	baseBody, baseStatus, baseDur, baseErr := fetch(client, baseline, tgt)
	candBody, candStatus, candDur, candErr := fetch(client, candidate, tgt)
	comp.DurationBaseline = baseDur
	comp.DurationCandidate = candDur

	if baseErr != nil {
		comp.Error = fmt.Errorf("baseline request failed: %w", baseErr)
		return comp
	}
	if candErr != nil {
		comp.Error = fmt.Errorf("candidate request failed: %w", candErr)
		return comp
	}

	comp.BaselineStatus = baseStatus
	comp.CandidateStatus = candStatus
	comp.StatusMatch = baseStatus == candStatus
	comp.BodyMatch = bodiesEqual(baseBody, candBody)
	return comp
}

func fetch(client *http.Client, base string, tgt target) ([]byte, int, time.Duration, error) {
	if client == nil {
		return nil, 0, 0, errors.New("nil client")
	}
	method := strings.ToUpper(strings.TrimSpace(tgt.Method))
	if method == "" {
		method = http.MethodGet
	}
	path := tgt.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequest(method, strings.TrimRight(base, "/")+path, nil)
	if err != nil {
		return nil, 0, 0, err
	}
	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, 0, err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, time.Since(start), nil
}

// volatileKeys differ between any two responses and are ignored.
var volatileKeys = map[string]struct{}{
	"processing_time_ms": {},
	"request_id":         {},
	"generated_at":       {},
}

func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	var aj, bj interface{}
	if err := json.Unmarshal(a, &aj); err != nil {
		return false
	}
	if err := json.Unmarshal(b, &bj); err != nil {
		return false
	}
	return reflect.DeepEqual(normalize(aj), normalize(bj))
}

func normalize(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		for k, inner := range val {
			if _, skip := volatileKeys[k]; skip {
				delete(val, k)
				continue
			}
			val[k] = normalize(inner)
		}
		return val
	case []interface{}:
		for i, inner := range val {
			val[i] = normalize(inner)
		}
		return val
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
	}
	return v
}

func printReport(out io.Writer, results []comparison) {
	ok := color.New(color.FgGreen)
	diff := color.New(color.FgYellow)
	failed := color.New(color.FgRed)

	fmt.Fprintln(out, "Compare Report")
	fmt.Fprintln(out, "==============")
	for _, res := range results {
		switch {
		case res.Error != nil:
			failed.Fprint(out, "[ERROR]")
		case !res.StatusMatch || !res.BodyMatch:
			diff.Fprint(out, "[DIFF]")
		default:
			ok.Fprint(out, "[OK]")
		}
		fmt.Fprintf(out, " %s %s\n", res.Target.Method, res.Target.Path)
		fmt.Fprintf(out, "  Baseline: %d (%s)\n", res.BaselineStatus, res.DurationBaseline)
		fmt.Fprintf(out, "  Candidate: %d (%s)\n", res.CandidateStatus, res.DurationCandidate)
		if res.Error != nil {
			fmt.Fprintf(out, "  Error: %v\n", res.Error)
		} else {
			fmt.Fprintf(out, "  Status match: %t | Body match: %t | Critical: %t\n", res.StatusMatch, res.BodyMatch, res.Target.Critical)
		}
	}
}
