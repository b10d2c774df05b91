package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"sort"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Bottle-Shot/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	ticks    int
	level    int
	score    int
	gameOver bool

	firstBreakTick    int
	firstLevelTick    int
	gameOverTick      int
	launches          int
	hits              int
	breaks            int
	levelsCleared     int
	unplannedShots    int
	breaksByKind      map[string]int
	launchPowerSum    int
	maxStandingAtOver int
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64
	var accuracy int
	var copyReport bool
	var verbose bool

	flag.IntVar(&runs, "runs", 5, "number of headless games")
	flag.IntVar(&ticks, "ticks", 20000, "tick budget per game")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&accuracy, "accuracy", 0, "max planner error in power steps (0 = perfect aim)")
	flag.BoolVar(&copyReport, "copy", false, "copy the report to the clipboard")
	flag.BoolVar(&verbose, "v", false, "log driver lifecycle to stderr")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if ticks <= 0 {
		fmt.Println("error: -ticks must be > 0")
		return
	}
	if accuracy < 0 {
		fmt.Println("error: -accuracy must be >= 0")
		return
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	var report strings.Builder
	out := io.MultiWriter(os.Stdout, &report)

	fmt.Fprintf(out, "=== Headless Bottle Shot Report ===\n")
	fmt.Fprintf(out, "runs=%d ticks=%d seed_base=%d seed_step=%d accuracy=%d\n\n", runs, ticks, seedBase, seedStep, accuracy)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs := runAutoplay(i+1, seed, ticks, accuracy, logger)
		all = append(all, rs)
		printRun(out, rs)
	}
	printAggregate(out, all)

	if copyReport {
		if err := clipboard.WriteAll(report.String()); err != nil {
			logger.Error("copy report", "err", err)
			return
		}
		logger.Info("report copied to clipboard", "bytes", report.Len())
	}
}

// runAutoplay plays one game with the aiming planner until the game ends or
// the tick budget runs out.
func runAutoplay(runIndex int, seed int64, ticks, accuracy int, logger *slog.Logger) runStats {
	ts := game.NewTestSim(game.WithSeed(seed), game.WithSimLogger(logger.With("run", runIndex)))
	cfg := ts.Driver.Config()
	rng := rand.New(rand.NewSource(seed ^ 0x5eed)) // #nosec G404 -- aim jitter only

	unplanned := 0
	for ts.Driver.TickCount() < ticks && !ts.Driver.Snapshot().GameOver {
		shot, ok := game.PlanShot(cfg, ts.World().Targets)
		if !ok {
			unplanned++
			shot = game.Shot{Pointer: game.PointerForAngle(cfg, 45), Power: cfg.MaxPower / 2, Ticks: 120}
		}
		shot.Power = jitterPower(rng, shot.Power, accuracy, cfg)
		ts.Fire(shot)
	}

	rs := collect(ts.Log.Entries())
	rs.runIndex = runIndex
	rs.seed = seed
	rs.ticks = ts.Driver.TickCount()
	hud := ts.Driver.Snapshot()
	rs.level = hud.Level
	rs.score = hud.Score
	rs.gameOver = hud.GameOver
	rs.unplannedShots = unplanned
	if hud.GameOver {
		rs.maxStandingAtOver = hud.Standing
	}
	return rs
}

// jitterPower perturbs power by up to accuracy steps and keeps it on the
// charge grid.
func jitterPower(rng *rand.Rand, power, accuracy int, cfg game.Config) int {
	if accuracy > 0 {
		power += (rng.Intn(2*accuracy+1) - accuracy) * cfg.PowerStep
	}
	power -= power % cfg.PowerStep
	if power < 0 {
		return 0
	}
	if power > cfg.MaxPower {
		return cfg.MaxPower
	}
	return power
}

// collect tallies the event log of one game.
func collect(entries []game.EventEntry) runStats {
	rs := runStats{
		breaksByKind:   map[string]int{},
		firstBreakTick: firstTick(entries, game.CatHit, "break", ""),
		firstLevelTick: firstTick(entries, game.CatRound, "level", ""),
		gameOverTick:   firstTick(entries, game.CatRound, "gameover", ""),
	}
	for _, e := range entries {
		switch e.Category {
		case game.CatShot:
			if e.Key == "launch" {
				rs.launches++
				rs.launchPowerSum += int(e.NumVal)
			}
		case game.CatHit:
			rs.hits++
			if e.Key == "break" {
				rs.breaks++
				rs.breaksByKind[kindOf(e.Value)]++
			}
		case game.CatRound:
			if e.Key == "level" {
				rs.levelsCleared++
			}
		}
	}
	return rs
}

// kindOf extracts the bottle kind from a hit entry value such as
// "armored #3 +30".
func kindOf(value string) string {
	if f := strings.Fields(value); len(f) > 0 {
		return f[0]
	}
	return "unknown"
}

func firstTick(entries []game.EventEntry, category, key, contains string) int {
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

func printRun(w io.Writer, rs runStats) {
	fmt.Fprintf(w, "--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	fmt.Fprintf(w, "result: level=%d score=%d game_over=%v ticks=%d\n", rs.level, rs.score, rs.gameOver, rs.ticks)
	fmt.Fprintf(w, "phase_markers: first_break=%d first_level_clear=%d game_over=%d\n",
		rs.firstBreakTick, rs.firstLevelTick, rs.gameOverTick)
	fmt.Fprintf(w, "shots: launched=%d hits=%d breaks=%d hit_rate=%s avg_power=%.1f unplanned=%d\n",
		rs.launches, rs.hits, rs.breaks, pct(rs.hits, rs.launches), avg(rs.launchPowerSum, rs.launches), rs.unplannedShots)
	fmt.Fprintf(w, "breaks_by_kind: %s\n", joinCounts(rs.breaksByKind))
	if rs.gameOver {
		fmt.Fprintf(w, "left_standing=%d\n", rs.maxStandingAtOver)
	}
	fmt.Fprintln(w)
}

func printAggregate(w io.Writer, all []runStats) {
	totalScore := 0
	totalLevel := 0
	totalLaunches := 0
	totalHits := 0
	totalBreaks := 0
	gameOvers := 0
	bestScore := 0
	kinds := map[string]int{}
	firstBreaks := make([]int, 0, len(all))

	for _, rs := range all {
		totalScore += rs.score
		totalLevel += rs.level
		totalLaunches += rs.launches
		totalHits += rs.hits
		totalBreaks += rs.breaks
		if rs.gameOver {
			gameOvers++
		}
		if rs.score > bestScore {
			bestScore = rs.score
		}
		if rs.firstBreakTick >= 0 {
			firstBreaks = append(firstBreaks, rs.firstBreakTick)
		}
		for k, n := range rs.breaksByKind {
			kinds[k] += n
		}
	}

	fmt.Fprintln(w, "=== Aggregate ===")
	fmt.Fprintf(w, "runs=%d game_overs=%d best_score=%d\n", len(all), gameOvers, bestScore)
	fmt.Fprintf(w, "avg_per_run: score=%.1f level=%.1f launched=%.1f breaks=%.1f\n",
		avg(totalScore, len(all)), avg(totalLevel, len(all)), avg(totalLaunches, len(all)), avg(totalBreaks, len(all)))
	fmt.Fprintf(w, "hit_rate=%s first_break_avg_tick=%s\n", pct(totalHits, totalLaunches), avgTickString(firstBreaks))
	fmt.Fprintf(w, "breaks_by_kind: %s\n", joinCounts(kinds))
}

func avg(sum int, n int) float64 {
	if n <= 0 {
		return 0
	}
	return float64(sum) / float64(n)
}

func pct(n, of int) string {
	if of <= 0 {
		return "n/a"
	}
	return fmt.Sprintf("%.0f%%", float64(n)/float64(of)*100)
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

func joinCounts(m map[string]int) string {
	if len(m) == 0 {
		return "none"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
