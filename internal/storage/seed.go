package storage

import "github.com/dungeonarchitect/companion/internal/catalog"

// Snapshot is the durable subset of the session state, as serialized
// into the slot. There is no explicit schema version field; older
// shapes are recognized by field presence.
type Snapshot struct {
	Systems           []catalog.System  `json:"systems"`
	Events            []catalog.Event   `json:"events"`
	Settings          *catalog.Settings `json:"settings,omitempty"`
	SelectedSystemIDs []string          `json:"selectedSystemIds,omitempty"`
	GenerationCount   int               `json:"generationCount,omitempty"`

	// LegacySelectedSystem carries the pre-multi-select scalar field
	// of old snapshots. Upgraded into SelectedSystemIDs on load and
	// never written back.
	LegacySelectedSystem string `json:"selectedSystem,omitempty"`
}

// State converts the snapshot into a fresh session state. The
// transient generated set always starts empty.
func (s Snapshot) State() catalog.State {
	st := catalog.State{
		Systems:           s.Systems,
		Events:            s.Events,
		SelectedSystemIDs: s.SelectedSystemIDs,
		GenerationCount:   s.GenerationCount,
	}
	if s.Settings != nil {
		st.Settings = *s.Settings
	} else {
		st.Settings = DefaultSettings()
	}
	if st.GenerationCount < 1 {
		st.GenerationCount = 1
	}
	return st
}

// PartialFromState extracts the full durable subset of a session state
// as a save request.
func PartialFromState(st catalog.State) Partial {
	settings := st.Settings
	return Partial{
		Systems:           &st.Systems,
		Events:            &st.Events,
		Settings:          &settings,
		SelectedSystemIDs: &st.SelectedSystemIDs,
		GenerationCount:   &st.GenerationCount,
	}
}

// GenericSystemID is the id of the built-in generic system. The seed
// selection contains only this id.
const GenericSystemID = "sys-generic"

// DefaultSettings returns the shipped settings: Brazilian Portuguese
// and the default card theme.
func DefaultSettings() catalog.Settings {
	return catalog.Settings{
		Language: "pt-BR",
		Theme: catalog.Theme{
			Background: "#241e35",
			Accent:     "#e0a458",
			Text:       "#f2e9e4",
			Border:     "#9a8c98",
		},
	}
}

// DefaultSnapshot returns the seed dataset used when the slot is
// absent or unreadable: the built-in systems and events, default
// settings, the generic system selected and a draw size of one.
func DefaultSnapshot() Snapshot {
	settings := DefaultSettings()
	return Snapshot{
		Systems:           seedSystems(),
		Events:            seedEvents(),
		Settings:          &settings,
		SelectedSystemIDs: []string{GenericSystemID},
		GenerationCount:   1,
	}
}

func seedSystems() []catalog.System {
	return []catalog.System{
		{
			ID:    GenericSystemID,
			Name:  "Genérico",
			Stats: []string{"Vida", "Sanidade"},
		},
		{
			ID:    "sys-velho-mundo",
			Name:  "Crônicas do Velho Mundo",
			Stats: []string{"Vigor", "Astúcia", "Fé"},
		},
	}
}

func seedEvents() []catalog.Event {
	return []catalog.Event{
		{
			ID:          "evt-seed-001",
			Type:        "Combate",
			Description: "Um bando de goblins emboscou o grupo na estrada. Eles lutam de forma desorganizada, mas **atacam em grande número**.",
			Reward:      "35 moedas de ouro",
			Difficulty:  "Fácil",
			SystemTag:   "Genérico",
		},
		{
			ID:          "evt-seed-002",
			Type:        "Elite",
			Description: "O campeão da arena desce das arquibancadas e desafia o guerreiro mais forte do grupo para um **duelo de honra**.",
			Reward:      "Espada do campeão",
			Difficulty:  "Difícil",
			SystemTag:   "Genérico",
		},
		{
			ID:          "evt-seed-003",
			Type:        "Armadilha",
			Description: "O corredor está coberto por placas de pressão. Quem pisar sem cuidado ativa **dardos envenenados** das paredes.",
			Reward:      "",
			Difficulty:  "Média",
			SystemTag:   "Genérico",
		},
		{
			ID:          "evt-seed-004",
			Type:        "Tesouro",
			Description: "Atrás do altar em ruínas há um baú trancado. A fechadura é antiga e **resistente a arrombamentos**.",
			Reward:      "Baú com 120 moedas e uma poção",
			Difficulty:  "Fácil",
			SystemTag:   "Genérico",
		},
		{
			ID:          "evt-seed-005",
			Type:        "Evento",
			Description: "Um mercador ambulante oferece informações sobre a fortaleza em troca de uma escolta até a **próxima vila**.",
			Reward:      "Mapa da fortaleza",
			Difficulty:  "",
			SystemTag:   "Genérico",
		},
		{
			ID:          "evt-seed-006",
			Type:        "Combate",
			Description: "Um cavaleiro corrompido pela névoa bloqueia a ponte. Sua armadura **regenera a cada turno** enquanto a névoa persistir.",
			Reward:      "Elmo enevoado",
			Difficulty:  "Difícil",
			SystemTag:   "Crônicas do Velho Mundo",
		},
		{
			ID:          "evt-seed-007",
			Type:        "Evento",
			Description: "Os sinos da catedral tocam sozinhos à meia-noite. Os aldeões imploram por ajuda para **quebrar a maldição**.",
			Reward:      "Bênção do vigário",
			Difficulty:  "Média",
			SystemTag:   "Crônicas do Velho Mundo",
		},
	}
}
