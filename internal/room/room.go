// Package room hosts one match: the aggregate state, every simulation
// subsystem and the single goroutine all mutation is serialized through.
// Transport hands in decoded messages and join/leave notifications; the
// room hands back snapshots and events through the Sink.
package room

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/keeprush/arena/internal/action"
	"github.com/keeprush/arena/internal/ai"
	"github.com/keeprush/arena/internal/bot"
	"github.com/keeprush/arena/internal/config"
	"github.com/keeprush/arena/internal/mapdata"
	"github.com/keeprush/arena/internal/model"
	"github.com/keeprush/arena/internal/movement"
	"github.com/keeprush/arena/internal/phase"
)

// Sink receives the room's outbound traffic. Implemented by the transport
// hub; a nil-safe no-op implementation exists for tests.
type Sink interface {
	Broadcast(msgType string, data any)
	Send(playerID, msgType string, data any)
}

// Outbound message types.
const (
	TypeSnapshot     = "snapshot"
	TypeMapInfo      = "map"
	TypeActionEvent  = "action_event"
	TypeJoinRejected = "join_rejected"
)

// Room owns one match end to end. All fields are touched only by the
// goroutine running Run; external callers use the Post* entry points.
type Room struct {
	cfg  config.Config
	def  *mapdata.Definition
	sink Sink

	st      *model.MatchState
	move    *movement.Engine
	units   *ai.Manager
	phases  *phase.Manager
	actions *action.Registry
	bots    map[string]*bot.Bot
	rng     *rand.Rand

	inbox     chan func()
	tickCount uint64
}

// New builds a room from a validated map definition. Construction fails
// only on a bad map, the one fatal error class.
func New(cfg config.Config, def *mapdata.Definition, sink Sink) (*Room, error) {
	st, err := def.BuildState()
	if err != nil {
		return nil, fmt.Errorf("room creation: %w", err)
	}

	sim := cfg.Simulation
	move := movement.NewEngine(sim.SafetyMargin)
	units := ai.NewManager(&ai.Params{
		Move:                move,
		Margin:              sim.SafetyMargin,
		WanderIntervalTicks: sim.WanderIntervalTicks,
		WanderRadius:        sim.WanderRadius,
		FleeDistance:        sim.FleeDistance,
		FleeDurationTicks:   sim.FleeDurationTicks,
		CleanupDelay:        sim.CorpseCleanupDelay,
		Rng:                 rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	})

	r := &Room{
		cfg:  cfg,
		def:  def,
		sink: sink,
		st:   st,
		move: move,
		units: units,
		phases: phase.NewManager(phase.Config{
			RequiredPlayers: sim.MaxPlayers,
			LobbyCountdown:  sim.LobbyCountdown,
			MatchDuration:   sim.MatchDuration,
			GameOverDelay:   sim.GameOverDelay,
			StartResources:  sim.StartResources,
			IncomePerSec:    sim.IncomePerSec,
		}),
		bots:  make(map[string]*bot.Bot),
		rng:   rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		inbox: make(chan func(), 64),
	}

	registry := action.NewRegistry()
	registry.Register(action.NewBonkAction(action.BonkConfig{
		Cooldown:      sim.BonkCooldown,
		Radius:        sim.BonkRadius,
		Damage:        sim.BonkDamage,
		MaxHits:       sim.BonkMaxHits,
		Knockback:     sim.BonkKnockback,
		KnockbackStep: sim.KnockbackStep,
		Margin:        sim.SafetyMargin,
		CleanupDelay:  sim.CorpseCleanupDelay,
	}, units.DamagedFunc(), r.emitEvent))
	registry.Register(action.NewSpawnRaptorAction(action.RaptorConfig{
		Cooldown:       sim.RaptorSpawnCooldown,
		SearchDistance: sim.RaptorSearchDistance,
		Margin:         sim.SafetyMargin,
	}, r.onUnitSpawned))
	r.actions = registry

	return r, nil
}

// Run drives the tick loop until the context is cancelled. Posted
// functions are interleaved between ticks, never concurrently with them.
func (r *Room) Run(ctx context.Context) error {
	interval := time.Duration(float64(time.Second) * r.cfg.Simulation.TickInterval())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("room running", "map", r.def.Name, "tick_interval", interval)
	dt := r.cfg.Simulation.TickInterval()

	for {
		select {
		case <-ctx.Done():
			slog.Info("room stopping")
			return ctx.Err()
		case fn := <-r.inbox:
			fn()
		case <-ticker.C:
			r.tick(dt)
		}
	}
}

// Post hands a function to the room goroutine. Everything external that
// touches match state goes through here.
func (r *Room) Post(fn func()) {
	r.inbox <- fn
}

// PostMessage enqueues a decoded client message.
func (r *Room) PostMessage(m Message) {
	r.Post(func() { r.handleMessage(m) })
}

// PostJoin enqueues a player join.
func (r *Room) PostJoin(playerID, name string) {
	r.Post(func() { r.handleJoin(playerID, name) })
}

// PostLeave enqueues a player leave.
func (r *Room) PostLeave(playerID string) {
	r.Post(func() { r.handleLeave(playerID) })
}

func (r *Room) emitEvent(e action.Event) {
	if r.sink != nil {
		r.sink.Broadcast(TypeActionEvent, e)
	}
}

// onUnitSpawned attaches a controller to every unit entering the match
// through a spawn path.
func (r *Room) onUnitSpawned(u *model.Unit) {
	r.units.Attach(u)
}

func (r *Room) sortedBotIDs() []string {
	ids := make([]string, 0, len(r.bots))
	for id := range r.bots {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
