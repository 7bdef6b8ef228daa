package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"monopoly/internal/domain"
)

// BoardSpace is one purchasable space in the externally supplied board
// table.
type BoardSpace struct {
	Position int    `json:"position"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Rent     int    `json:"rent"`
}

// GameConfig is the engine configuration loaded from data/board.json.
type GameConfig struct {
	Board []BoardSpace `json:"board"`
	// BotAutoFillDelaySeconds configures how many seconds a solo human waits before bots fill the lobby.
	BotAutoFillDelaySeconds int `json:"bot_auto_fill_delay_seconds"`
	BotMinDelaySeconds      int `json:"bot_min_delay_seconds"`
	BotMaxDelaySeconds      int `json:"bot_max_delay_seconds"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		var c GameConfig
		if err := json.Unmarshal(data, &c); err != nil {
			loadErr = fmt.Errorf("failed to unmarshal game config: %w", err)
			return
		}

		for _, sp := range c.Board {
			if sp.Position < 0 || sp.Position >= domain.BoardSize {
				loadErr = fmt.Errorf("board space %q: position %d out of range", sp.Name, sp.Position)
				return
			}
			if sp.Price <= 0 || sp.Rent < 0 {
				loadErr = fmt.Errorf("board space %q: bad price/rent", sp.Name)
				return
			}
		}

		cfg = &c
	})
	return loadErr
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// BoardSeed returns the configured board table, or the built-in classic
// board when no config was loaded.
func BoardSeed() []domain.PropertySpace {
	if cfg == nil || len(cfg.Board) == 0 {
		return domain.DefaultBoard()
	}

	seed := make([]domain.PropertySpace, 0, len(cfg.Board))
	for _, sp := range cfg.Board {
		seed = append(seed, domain.PropertySpace{
			Position: sp.Position,
			Name:     sp.Name,
			Price:    sp.Price,
			Rent:     sp.Rent,
		})
	}
	return seed
}
