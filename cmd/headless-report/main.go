package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/panjf2000/ants/v2"
	"github.com/spf13/cobra"

	"github.com/Garsondee/Pierre-Penguin/internal/game"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	runStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	bestStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type runStats struct {
	runIndex int
	seed     int64

	outcome game.FlightOutcomeReason

	firstHitTick  int
	firstCoinTick int
	firstStarTick int
	groundHits    int
	enemyHits     int
	finalEvents   string // log tail before game over, empty while flying

	windowSummary *game.WindowReport
}

type aggregate struct {
	runs         int
	avgDistance  float64
	avgCoins     float64
	avgHits      float64
	bestDistance int
	bestSeed     int64
	grounded     int
	struck       int
	flying       int
	causes       map[string]int
	firstHitAvg  string
}

var (
	flagRuns     int
	flagTicks    int
	flagSeedBase int64
	flagSeedStep int64
	flagWorkers  int
	flagFinal    bool
)

// finalEventTicks is how much of the log leads up to a game over.
const finalEventTicks = 120

var rootCmd = &cobra.Command{
	Use:   "headless-report",
	Short: "Fly autopiloted flights without a window and report the outcomes",
	Long: `Runs a batch of seeded, autopiloted flights in parallel and prints
per-run markers plus an aggregate. Useful for checking that tuning and
encounter changes keep the game survivable.

Examples:
  headless-report --runs 20
  headless-report --runs 50 --ticks 7200 --workers 8`,
	SilenceUsage: true,
	RunE:         runReport,
}

func init() {
	rootCmd.Flags().IntVar(&flagRuns, "runs", 5, "number of headless flights")
	rootCmd.Flags().IntVar(&flagTicks, "ticks", 3600, "maximum ticks per flight")
	rootCmd.Flags().Int64Var(&flagSeedBase, "seed-base", 42, "RNG seed for run 1")
	rootCmd.Flags().Int64Var(&flagSeedStep, "seed-step", 1, "seed increment between runs")
	rootCmd.Flags().IntVar(&flagWorkers, "workers", 4, "parallel flights")
	rootCmd.Flags().BoolVar(&flagFinal, "final-events", false, "print the events leading up to each game over")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runReport(_ *cobra.Command, _ []string) error {
	if flagRuns <= 0 {
		return fmt.Errorf("--runs must be > 0")
	}
	if flagTicks <= 0 {
		return fmt.Errorf("--ticks must be > 0")
	}
	if flagWorkers <= 0 {
		flagWorkers = 1
	}

	fmt.Println(headerStyle.Render("=== Headless Flight Report ==="))
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d workers=%d\n\n",
		flagRuns, flagTicks, flagSeedBase, flagSeedStep, flagWorkers)

	all, failed, err := runAll(flagRuns, flagTicks, flagSeedBase, flagSeedStep, flagWorkers)
	if err != nil {
		return err
	}
	for _, rs := range all {
		printRun(rs)
	}
	if failed > 0 {
		fmt.Println(warnStyle.Render(fmt.Sprintf("%d flights panicked and were skipped", failed)))
	}
	printAggregate(summarize(all))
	return nil
}

// runAll flies every seed on a worker pool and returns the completed runs
// in run order.
func runAll(runs, ticks int, seedBase, seedStep int64, workers int) ([]runStats, int, error) {
	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make([]*runStats, runs)
		failed  int
	)
	pool, err := ants.NewPool(workers,
		ants.WithPreAlloc(true),
		ants.WithPanicHandler(func(p any) {
			mu.Lock()
			failed++
			mu.Unlock()
			fmt.Fprintf(os.Stderr, "flight panicked: %v\n", p)
		}),
	)
	if err != nil {
		return nil, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	for i := 0; i < runs; i++ {
		idx := i
		seed := seedBase + int64(i)*seedStep
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			rs := runFlight(idx+1, seed, ticks)
			mu.Lock()
			results[idx] = &rs
			mu.Unlock()
		}); err != nil {
			wg.Done()
			return nil, 0, fmt.Errorf("submit run %d: %w", idx+1, err)
		}
	}
	wg.Wait()

	all := make([]runStats, 0, runs)
	for _, rs := range results {
		if rs != nil {
			all = append(all, *rs)
		}
	}
	return all, failed, nil
}

func runFlight(runIndex int, seed int64, ticks int) runStats {
	f := game.NewFlight(game.WithSeed(seed), game.WithAutopilot())
	f.RunUntil(func(f *game.Flight) bool { return f.Scene.GameOver() }, ticks)

	entries := f.Log.Entries()
	ground := f.Log.HitsBy("ground")
	out := f.Outcome()
	final := ""
	if f.Scene.GameOver() {
		final = f.Log.Tail(finalEventTicks)
	}
	return runStats{
		runIndex:      runIndex,
		seed:          seed,
		outcome:       out,
		firstHitTick:  firstTick(entries, "damage", "hit", ""),
		firstCoinTick: firstTick(entries, "coin", "collected", ""),
		firstStarTick: firstTick(entries, "star", "collected", ""),
		groundHits:    ground,
		enemyHits:     out.Hits - ground,
		finalEvents:   final,
		windowSummary: f.Reporter.WindowSummary(),
	}
}

func firstTick(entries []game.FlightLogEntry, category, key, contains string) int {
	for _, e := range entries {
		if e.Category != category || e.Key != key {
			continue
		}
		if contains == "" || strings.Contains(e.Value, contains) {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Println(runStyle.Render(fmt.Sprintf("--- Run %d (seed=%d) ---", rs.runIndex, rs.seed)))
	fmt.Printf("outcome=%s cause=%s distance=%dm coins=%d ticks=%d\n",
		rs.outcome.Outcome, orNone(rs.outcome.Cause), rs.outcome.Distance, rs.outcome.Coins, rs.outcome.Ticks)
	fmt.Printf("phase_markers: first_hit=%d first_coin=%d first_star=%d\n",
		rs.firstHitTick, rs.firstCoinTick, rs.firstStarTick)
	fmt.Printf("event_totals: hits=%d ground=%d enemy=%d stars=%d encounters=%d\n",
		rs.outcome.Hits, rs.groundHits, rs.enemyHits, rs.outcome.Stars, rs.outcome.Encounters)
	if rs.windowSummary != nil {
		fmt.Print(rs.windowSummary.Format())
	}
	if flagFinal && rs.finalEvents != "" {
		fmt.Println(warnStyle.Render("final_events:"))
		fmt.Print(rs.finalEvents)
	}
	fmt.Println()
}

func summarize(all []runStats) aggregate {
	agg := aggregate{runs: len(all), causes: map[string]int{}}
	var dist, coins, hits int
	hitTicks := make([]int, 0, len(all))
	for i, rs := range all {
		o := rs.outcome
		dist += o.Distance
		coins += o.Coins
		hits += o.Hits
		if i == 0 || o.Distance > agg.bestDistance {
			agg.bestDistance = o.Distance
			agg.bestSeed = rs.seed
		}
		switch o.Outcome {
		case game.OutcomeGrounded:
			agg.grounded++
		case game.OutcomeStruck:
			agg.struck++
		default:
			agg.flying++
		}
		if o.Cause != "" {
			agg.causes[o.Cause]++
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
	}
	agg.avgDistance = avg(dist, len(all))
	agg.avgCoins = avg(coins, len(all))
	agg.avgHits = avg(hits, len(all))
	agg.firstHitAvg = avgTickString(hitTicks)
	return agg
}

func printAggregate(agg aggregate) {
	fmt.Println(headerStyle.Render("=== Aggregate ==="))
	fmt.Printf("runs=%d grounded=%d struck=%d still_flying=%d\n", agg.runs, agg.grounded, agg.struck, agg.flying)
	fmt.Printf("avg_per_run: distance=%.1fm coins=%.1f hits=%.1f first_hit_tick=%s\n",
		agg.avgDistance, agg.avgCoins, agg.avgHits, agg.firstHitAvg)
	fmt.Printf("causes: %s\n", joinCounts(agg.causes))
	if agg.runs > 0 {
		fmt.Println(bestStyle.Render(fmt.Sprintf("best: %dm (seed=%d)", agg.bestDistance, agg.bestSeed)))
	}
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func avgTickString(vals []int) string {
	if len(vals) == 0 {
		return "n/a"
	}
	sum := 0
	for _, v := range vals {
		sum += v
	}
	return fmt.Sprintf("%.1f", float64(sum)/float64(len(vals)))
}

func joinCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return strings.Join(parts, ",")
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
