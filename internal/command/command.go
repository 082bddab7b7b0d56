// Package command is the scripting-facing surface of the engine: a small set
// of text verbs that mutate session state or render a status readout.
// Gameplay-level misses (already watered, not ready to harvest) are ordinary
// messages, not errors; only malformed input and unknown ids are errors, and
// callers render those as messages too.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/greenhollow/almanac/internal/domain"
	"github.com/greenhollow/almanac/internal/logger"
	"github.com/greenhollow/almanac/internal/session"
)

// Verbs accepted by Execute.
const (
	VerbSleep     = "SLEEP"
	VerbPause     = "PAUSE"
	VerbResume    = "RESUME"
	VerbWater     = "WATER"
	VerbFertilize = "FERTILIZE"
	VerbHarvest   = "HARVEST"
	VerbStatus    = "STATUS"
	VerbSpawn     = "SPAWN"
)

// User-facing message formats. Tests reference these constants rather than
// duplicating literals.
const (
	MsgSlept          = "You sleep. It is now %s."
	MsgPaused         = "Time is paused."
	MsgResumed        = "Time resumes."
	MsgWatered        = "You water the %s."
	MsgAlreadyWatered = "The %s has already been watered today."
	MsgFertilized     = "You fertilize the %s."
	MsgAlreadyFert    = "The %s is already fertilized."
	MsgNotReady       = "The %s is not ready to harvest."
	MsgHarvested      = "You harvest %d %s (quality %.1f)."
	MsgSpawned        = "Planted a %s (%s)."
	MsgNoPlant        = "No plant found at this location."
	MsgUnknownSpecies = "Unknown species."
	MsgOutOfSeason    = "That can't be planted this season."
)

// Service executes text commands against a session.
type Service interface {
	Execute(ctx context.Context, line string) (string, error)
}

type service struct {
	session *session.Session
}

// NewService creates a command service bound to one session.
func NewService(sess *session.Session) Service {
	return &service{session: sess}
}

// Execute parses and runs one command line, returning the user-facing
// message. State is never left half-mutated on an error return.
func (s *service) Execute(ctx context.Context, line string) (string, error) {
	log := logger.FromContext(ctx)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", fmt.Errorf("%w: empty command", domain.ErrInvalidInput)
	}
	if len(fields) > 2 {
		return "", fmt.Errorf("%w: at most one argument allowed", domain.ErrInvalidInput)
	}

	verb := strings.ToUpper(fields[0])
	arg := ""
	if len(fields) == 2 {
		arg = fields[1]
	}

	log.Debug("Executing command", "verb", verb, "arg", arg)

	switch verb {
	case VerbSleep:
		return s.sleep(ctx, arg)
	case VerbPause:
		return s.pause(arg)
	case VerbResume:
		return s.resume(arg)
	case VerbWater:
		return s.water(ctx, arg)
	case VerbFertilize:
		return s.fertilize(ctx, arg)
	case VerbHarvest:
		return s.harvest(ctx, arg)
	case VerbStatus:
		return s.status(arg)
	case VerbSpawn:
		return s.spawn(ctx, arg)
	default:
		return "", fmt.Errorf("%w: %s", domain.ErrUnknownCommand, verb)
	}
}

func (s *service) sleep(ctx context.Context, arg string) (string, error) {
	if err := requireNoArg(VerbSleep, arg); err != nil {
		return "", err
	}
	t := s.session.Sleep(ctx)
	return fmt.Sprintf(MsgSlept, t), nil
}

func (s *service) pause(arg string) (string, error) {
	if err := requireNoArg(VerbPause, arg); err != nil {
		return "", err
	}
	s.session.Pause().Pause()
	return MsgPaused, nil
}

func (s *service) resume(arg string) (string, error) {
	if err := requireNoArg(VerbResume, arg); err != nil {
		return "", err
	}
	s.session.Pause().Resume()
	return MsgResumed, nil
}

func (s *service) water(ctx context.Context, arg string) (string, error) {
	id, err := parsePlantID(arg)
	if err != nil {
		return "", err
	}
	applied, err := s.session.Garden().Water(ctx, id)
	if err != nil {
		return "", err
	}
	name := s.speciesName(id)
	if !applied {
		return fmt.Sprintf(MsgAlreadyWatered, name), nil
	}
	return fmt.Sprintf(MsgWatered, name), nil
}

func (s *service) fertilize(ctx context.Context, arg string) (string, error) {
	id, err := parsePlantID(arg)
	if err != nil {
		return "", err
	}
	applied, err := s.session.Garden().Fertilize(ctx, id)
	if err != nil {
		return "", err
	}
	name := s.speciesName(id)
	if !applied {
		return fmt.Sprintf(MsgAlreadyFert, name), nil
	}
	return fmt.Sprintf(MsgFertilized, name), nil
}

func (s *service) harvest(ctx context.Context, arg string) (string, error) {
	id, err := parsePlantID(arg)
	if err != nil {
		return "", err
	}
	name := s.speciesName(id)
	result, err := s.session.Garden().Harvest(ctx, id, s.session.Clock().CurrentTime())
	if err != nil {
		return "", err
	}
	if result == nil {
		return fmt.Sprintf(MsgNotReady, name), nil
	}
	return fmt.Sprintf(MsgHarvested, result.Yield, name, result.Quality), nil
}

func (s *service) status(arg string) (string, error) {
	now := s.session.Clock().CurrentTime()
	if arg == "" {
		paused := ""
		if s.session.Clock().IsPaused() {
			paused = " (paused)"
		}
		return now.String() + paused, nil
	}

	id, err := parsePlantID(arg)
	if err != nil {
		return "", err
	}
	status, err := s.session.Garden().Status(id, now)
	if err != nil {
		return "", err
	}

	readiness := "growing"
	if status.ReadyToHarvest {
		readiness = "ready to harvest"
	}
	return fmt.Sprintf("%s: stage %d/%d, water %d%%, %s",
		status.SpeciesName,
		status.Instance.GrowthStage+1,
		status.StageCount,
		status.Instance.WaterLevel,
		readiness), nil
}

func (s *service) spawn(ctx context.Context, arg string) (string, error) {
	if arg == "" {
		return "", fmt.Errorf("%w: %s requires a species id", domain.ErrInvalidInput, VerbSpawn)
	}
	now := s.session.Clock().CurrentTime()
	instance, err := s.session.Garden().Spawn(ctx, arg, s.session.ActiveRegion(), now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(MsgSpawned, s.speciesName(instance.InstanceID), instance.InstanceID), nil
}

// speciesName resolves a display name for messages, falling back to "plant"
// when the instance is already gone (e.g. after a destructive harvest).
func (s *service) speciesName(id uuid.UUID) string {
	now := s.session.Clock().CurrentTime()
	status, err := s.session.Garden().Status(id, now)
	if err != nil {
		return "plant"
	}
	return status.SpeciesName
}

func requireNoArg(verb, arg string) error {
	if arg != "" {
		return fmt.Errorf("%w: %s takes no argument", domain.ErrInvalidInput, verb)
	}
	return nil
}

func parsePlantID(arg string) (uuid.UUID, error) {
	if arg == "" {
		return uuid.Nil, fmt.Errorf("%w: missing plant id", domain.ErrInvalidInput)
	}
	id, err := uuid.Parse(arg)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: malformed plant id %q", domain.ErrInvalidInput, arg)
	}
	return id, nil
}
