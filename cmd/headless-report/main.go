package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/Garsondee/pong/internal/config"
	"github.com/Garsondee/pong/internal/game"
)

type runStats struct {
	runIndex int
	seed     int64

	finished bool
	ticks    int
	score    [2]int
	outcome  game.MatchOutcomeReason

	firstHitTick   int
	firstScoreTick int

	paddleHits  int
	sideHits    [2]int
	wallBounces int
	points      int

	// decidingPoint is the last score entry, empty when nobody scored.
	decidingPoint string

	summary game.ReportSummary
}

func main() {
	var runs int
	var maxTicks int
	var seedBase int64
	var seedStep int64
	var firstTo int
	var cfgPath string
	var verbose bool
	var aiOffset float64
	var speedUp float64

	flag.IntVar(&runs, "runs", 5, "number of headless AI-vs-AI matches")
	flag.IntVar(&maxTicks, "max-ticks", 60*60*10, "tick limit per match")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.IntVar(&firstTo, "first-to", 0, "winning score (0 keeps the configured value)")
	flag.StringVar(&cfgPath, "config", "", "optional YAML config file")
	flag.BoolVar(&verbose, "verbose", false, "print each rally's log lines, with ball and paddle positions")
	flag.Float64Var(&aiOffset, "ai-offset", 70, "AI aim offset range (negative keeps the configured value)")
	flag.Float64Var(&speedUp, "speed-up", 0.25, "ball speed-up per paddle hit (negative keeps the configured value)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if maxTicks <= 0 {
		fmt.Println("error: -max-ticks must be > 0")
		return
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if firstTo > 0 {
		cfg.WinningScore = firstTo
	}
	cfg = reportConfig(cfg, aiOffset, speedUp)

	fmt.Printf("=== Headless Match Report ===\n")
	fmt.Printf("runs=%d max_ticks=%d seed_base=%d seed_step=%d first_to=%d court=%dx%d ai_offset=%.0f speed_up=%.2f\n\n",
		runs, maxTicks, seedBase, seedStep, cfg.WinningScore, cfg.Court.Width, cfg.Court.Height,
		cfg.AI.OffsetRange, cfg.Ball.SpeedUpPerHit)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		rs, hs, err := runMatch(i+1, seed, maxTicks, cfg, verbose)
		if err != nil {
			log.Fatalf("run %d: %v", i+1, err)
		}
		all = append(all, rs)
		printRun(rs)
		if hs.Log.Verbose() {
			fmt.Print(rallyLogs(hs))
			fmt.Println()
		}
	}

	printAggregate(all)
}

// runMatch plays one AI-vs-AI match and collects its statistics.
func runMatch(runIndex int, seed int64, maxTicks int, cfg config.Config, verbose bool) (runStats, *game.HeadlessSim, error) {
	hs, err := game.NewHeadlessSim(
		game.WithConfig(cfg),
		game.WithControllers(config.ControllerAI, config.ControllerAI),
		game.WithSeed(seed),
		game.WithVerbose(verbose),
	)
	if err != nil {
		return runStats{}, nil, err
	}
	finished := hs.RunUntilGameOver(maxTicks)

	entries := hs.Log.Entries()
	return runStats{
		runIndex:       runIndex,
		seed:           seed,
		finished:       finished,
		ticks:          hs.Match.Tick,
		score:          hs.Match.Scores,
		outcome:        game.DetermineOutcome(hs.Match),
		firstHitTick:   firstTick(entries, "ball", "paddle_hit"),
		firstScoreTick: firstTick(entries, "score", "score"),
		paddleHits:     hs.Log.Count("ball", "paddle_hit"),
		sideHits:       [2]int{sideCount(hs.Log, game.SideLeft, "paddle_hit"), sideCount(hs.Log, game.SideRight, "paddle_hit")},
		wallBounces:    hs.Log.Count("ball", "wall_bounce"),
		points:         hs.Log.Count("score", "score"),
		decidingPoint:  decidingPoint(hs.Log),
		summary:        hs.Reporter.Summary(),
	}, hs, nil
}

// reportConfig applies the report's AI and speed-up settings. The game's
// defaults keep the AI on target and the ball at a constant speed, so two AIs
// can rally for ever; a wider aim offset than the paddle can cover and a ball
// that speeds up make the matches end. Negative values keep cfg as it is.
func reportConfig(cfg config.Config, aiOffset, speedUp float64) config.Config {
	if aiOffset >= 0 {
		cfg.AI.OffsetRange = aiOffset
	}
	if speedUp >= 0 {
		cfg.Ball.SpeedUpPerHit = speedUp
	}
	return cfg
}

// sideCount counts one side's entries with the given key.
func sideCount(ml *game.MatchLog, side game.Side, key string) int {
	n := 0
	for _, e := range ml.FilterSide(side.Label()) {
		if e.Key == key {
			n++
		}
	}
	return n
}

func decidingPoint(ml *game.MatchLog) string {
	e, ok := ml.LastOf("score", "score")
	if !ok {
		return ""
	}
	return fmt.Sprintf("T=%d %s %s", e.Tick, e.Side, e.Value)
}

// rallyLogs renders the log one rally at a time. A rally starts on the tick
// after its serve; the serve tick belongs to the previous point.
func rallyLogs(hs *game.HeadlessSim) string {
	var sb strings.Builder
	for _, ra := range hs.Reporter.Rallies() {
		end := ra.EndTick
		if ra.WonBy == game.SideNone {
			end = hs.Match.Tick
		}
		fmt.Fprintf(&sb, "rally %d: ticks %d-%d won_by=%s\n", ra.Index, ra.StartTick, end, ra.WonBy.Label())
		sb.WriteString(hs.Log.FormatRange(ra.StartTick+1, end))
	}
	return sb.String()
}

func firstTick(entries []game.MatchLogEntry, category, key string) int {
	for _, e := range entries {
		if e.Category == category && e.Key == key {
			return e.Tick
		}
	}
	return -1
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.runIndex, rs.seed)
	status := "finished"
	if !rs.finished {
		status = "tick_limit"
	}
	fmt.Printf("result: %s ticks=%d score=%d-%d  %s\n",
		status, rs.ticks, rs.score[game.SideLeft], rs.score[game.SideRight], rs.outcome.Description)
	fmt.Printf("phase_markers: first_hit=%d first_score=%d\n", rs.firstHitTick, rs.firstScoreTick)
	fmt.Printf("event_totals: paddle_hit=%d (L=%d R=%d) wall_bounce=%d score=%d\n",
		rs.paddleHits, rs.sideHits[game.SideLeft], rs.sideHits[game.SideRight], rs.wallBounces, rs.points)
	if rs.decidingPoint != "" {
		fmt.Printf("last_point: %s\n", rs.decidingPoint)
	}
	fmt.Print(rs.summary.Format())
	fmt.Println()
}

func printAggregate(all []runStats) {
	var wins [2]int
	unfinished := 0
	totalHits := 0
	totalWalls := 0
	totalPoints := 0
	totalTicks := 0
	longest := 0
	margins := map[string]int{}
	hitTicks := make([]int, 0, len(all))

	for _, rs := range all {
		switch rs.outcome.Outcome {
		case game.OutcomeLeftWins:
			wins[game.SideLeft]++
		case game.OutcomeRightWins:
			wins[game.SideRight]++
		default:
			unfinished++
		}
		if rs.outcome.MarginLabel != "" {
			margins[rs.outcome.MarginLabel]++
		}
		totalHits += rs.paddleHits
		totalWalls += rs.wallBounces
		totalPoints += rs.points
		totalTicks += rs.ticks
		if rs.summary.LongestRally > longest {
			longest = rs.summary.LongestRally
		}
		if rs.firstHitTick >= 0 {
			hitTicks = append(hitTicks, rs.firstHitTick)
		}
	}

	fmt.Println("=== Aggregate ===")
	fmt.Printf("runs=%d left_wins=%d right_wins=%d unfinished=%d\n",
		len(all), wins[game.SideLeft], wins[game.SideRight], unfinished)
	fmt.Printf("avg_per_run: ticks=%.1f paddle_hit=%.1f wall_bounce=%.1f points=%.1f\n",
		avg(totalTicks, len(all)), avg(totalHits, len(all)), avg(totalWalls, len(all)), avg(totalPoints, len(all)))
	fmt.Printf("hits_per_point=%.2f longest_rally=%d first_hit_avg_tick=%s\n",
		avg(totalHits, totalPoints), longest, avgTickString(hitTicks))
	fmt.Printf("margins: %s\n", joinCounts(margins))
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

// joinCounts renders a count map as sorted "key=n" pairs.
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
	return strings.Join(parts, ",")
}
