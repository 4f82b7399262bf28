package main

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

const (
	ModeAIVsHuman    = "ai_vs_human"
	ModeHumanVsHuman = "human_vs_human"
	ModeAIVsAI       = "ai_vs_ai"
)

type GameSettings struct {
	EdgeSize    int        `json:"edge_size" yaml:"edge_size"`
	WinLength   int        `json:"win_length" yaml:"win_length"`
	XType       PlayerType `json:"-" yaml:"-"`
	OType       PlayerType `json:"-" yaml:"-"`
	XDifficulty Difficulty `json:"x_difficulty" yaml:"x_difficulty"`
	ODifficulty Difficulty `json:"o_difficulty" yaml:"o_difficulty"`
	XName       string     `json:"x_name" yaml:"x_name"`
	OName       string     `json:"o_name" yaml:"o_name"`
}

const maxDisplayName = 32

func DefaultGameSettings() GameSettings {
	return GameSettings{
		EdgeSize:    3,
		WinLength:   3,
		XType:       PlayerHuman,
		OType:       PlayerAI,
		XDifficulty: DifficultyStandard,
		ODifficulty: DifficultyStandard,
	}
}

func (s GameSettings) Validate() error {
	var errs []error
	if !ValidEdgeSize(s.EdgeSize) {
		errs = append(errs, fmt.Errorf("edge_size %d out of range [%d,%d]", s.EdgeSize, MinEdgeSize, MaxEdgeSize))
	}
	// A win length above the edge size is legal; such a game always draws.
	if s.WinLength < 3 {
		errs = append(errs, fmt.Errorf("win_length %d must be at least 3", s.WinLength))
	}
	for _, name := range []string{s.XName, s.OName} {
		if utf8.RuneCountInString(name) > maxDisplayName {
			errs = append(errs, fmt.Errorf("display name %q longer than %d characters", name, maxDisplayName))
		}
	}
	return errors.Join(errs...)
}

// NameFor returns the display name for side, falling back to "Player" for a
// human and "AI" for an engine side.
func (s GameSettings) NameFor(side Side) string {
	name := s.OName
	if side == SideX {
		name = s.XName
	}
	if name != "" {
		return name
	}
	if s.TypeFor(side) == PlayerHuman {
		return "Player"
	}
	return "AI"
}

func (s GameSettings) TypeFor(side Side) PlayerType {
	if side == SideX {
		return s.XType
	}
	return s.OType
}

func (s GameSettings) DifficultyFor(side Side) Difficulty {
	if side == SideX {
		return s.XDifficulty
	}
	return s.ODifficulty
}

func (s GameSettings) Mode() string {
	switch {
	case s.XType == PlayerAI && s.OType == PlayerAI:
		return ModeAIVsAI
	case s.XType == PlayerHuman && s.OType == PlayerHuman:
		return ModeHumanVsHuman
	default:
		return ModeAIVsHuman
	}
}

// GameSettingsDTO is the wire shape of GameSettings. X always moves first;
// HumanPlayer picks the human's side in ai_vs_human (1 = X, 2 = O).
type GameSettingsDTO struct {
	Mode        string `json:"mode"`
	HumanPlayer int    `json:"human_player"`
	EdgeSize    int    `json:"edge_size"`
	WinLength   int    `json:"win_length"`
	Difficulty  string `json:"difficulty,omitempty"`
	XDifficulty string `json:"x_difficulty,omitempty"`
	ODifficulty string `json:"o_difficulty,omitempty"`
	XName       string `json:"x_name,omitempty"`
	OName       string `json:"o_name,omitempty"`
}

func settingsFromDTO(dto GameSettingsDTO, base GameSettings) (GameSettings, error) {
	settings := base
	switch dto.Mode {
	case ModeAIVsAI:
		settings.XType = PlayerAI
		settings.OType = PlayerAI
	case ModeHumanVsHuman:
		settings.XType = PlayerHuman
		settings.OType = PlayerHuman
	case ModeAIVsHuman, "":
		if dto.HumanPlayer == 2 {
			settings.XType = PlayerAI
			settings.OType = PlayerHuman
		} else {
			settings.XType = PlayerHuman
			settings.OType = PlayerAI
		}
	default:
		return base, fmt.Errorf("unknown mode %q", dto.Mode)
	}
	if dto.EdgeSize != 0 {
		settings.EdgeSize = dto.EdgeSize
	}
	if dto.WinLength != 0 {
		settings.WinLength = dto.WinLength
	}
	if dto.Difficulty != "" {
		level, err := ParseDifficulty(dto.Difficulty)
		if err != nil {
			return base, err
		}
		settings.XDifficulty = level
		settings.ODifficulty = level
	}
	for _, override := range []struct {
		raw    string
		target *Difficulty
	}{
		{dto.XDifficulty, &settings.XDifficulty},
		{dto.ODifficulty, &settings.ODifficulty},
	} {
		if override.raw == "" {
			continue
		}
		level, err := ParseDifficulty(override.raw)
		if err != nil {
			return base, err
		}
		*override.target = level
	}
	if dto.XName != "" {
		settings.XName = dto.XName
	}
	if dto.OName != "" {
		settings.OName = dto.OName
	}
	if err := settings.Validate(); err != nil {
		return base, err
	}
	return settings, nil
}

func settingsToDTO(settings GameSettings) GameSettingsDTO {
	humanPlayer := 0
	switch {
	case settings.XType == PlayerHuman:
		humanPlayer = 1
	case settings.OType == PlayerHuman:
		humanPlayer = 2
	}
	return GameSettingsDTO{
		Mode:        settings.Mode(),
		HumanPlayer: humanPlayer,
		EdgeSize:    settings.EdgeSize,
		WinLength:   settings.WinLength,
		XDifficulty: settings.XDifficulty.String(),
		ODifficulty: settings.ODifficulty.String(),
		XName:       settings.NameFor(SideX),
		OName:       settings.NameFor(SideO),
	}
}
