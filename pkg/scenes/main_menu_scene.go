package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/highway/pkg/config"
	"github.com/decker502/highway/pkg/game"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// MainMenuScene represents the main menu screen of the game.
// It shows the high score, lets the player pick a tuning profile and starts a run.
type MainMenuScene struct {
	sceneManager *game.SceneManager
	highScores   *game.HighScoreStore
	settings     *game.SettingsManager // 可为 nil

	profiles []string
	selected int

	highScore int

	keys    KeySource
	pointer PointerSource
}

// NewMainMenuScene creates and returns a new MainMenuScene instance.
//
// Parameters:
//   - sm: The SceneManager used to start a run.
//   - highScores: The high score store shown on the menu.
//   - settings: Preferences; the chosen profile is saved here. May be nil.
//   - profiles: The tuning profile names offered for selection.
//   - defaultProfile: The profile selected when settings name none.
func NewMainMenuScene(sm *game.SceneManager, highScores *game.HighScoreStore, settings *game.SettingsManager, profiles []string, defaultProfile string) *MainMenuScene {
	if highScores == nil {
		highScores = game.NewHighScoreStoreOn(nil)
	}
	m := &MainMenuScene{
		sceneManager: sm,
		highScores:   highScores,
		settings:     settings,
		profiles:     profiles,
		keys:         ebitenKeys{},
		pointer:      defaultPointer,
	}

	want := defaultProfile
	if settings != nil && settings.GetSettings().Profile != "" {
		want = settings.GetSettings().Profile
	}
	for i, name := range profiles {
		if name == want {
			m.selected = i
		}
	}
	m.OnEnter()
	return m
}

// OnEnter refreshes the displayed high score whenever the menu becomes active.
func (m *MainMenuScene) OnEnter() {
	m.highScore = m.highScores.HighScore()
}

// SelectedProfile returns the highlighted profile name, or "" when none are offered.
func (m *MainMenuScene) SelectedProfile() string {
	if len(m.profiles) == 0 {
		return ""
	}
	return m.profiles[m.selected]
}

// Update handles profile selection and starting a run.
func (m *MainMenuScene) Update(deltaTime float64) {
	if len(m.profiles) > 0 {
		switch {
		case anyJustPressed(m.keys, keysLeft):
			m.selectProfile(m.selected - 1)
		case anyJustPressed(m.keys, keysRight):
			m.selectProfile(m.selected + 1)
		}
	}

	clicked, _, _ := m.pointer()
	if clicked || anyJustPressed(m.keys, keysConfirm) {
		m.start()
	}
}

func (m *MainMenuScene) selectProfile(index int) {
	n := len(m.profiles)
	m.selected = ((index % n) + n) % n
	log.Printf("[MainMenuScene] Profile selected: %s", m.SelectedProfile())

	if m.settings == nil {
		return
	}
	m.settings.SetProfile(m.SelectedProfile())
	if err := m.settings.Save(); err != nil {
		log.Printf("[MainMenuScene] Warning: Failed to save profile: %v", err)
	}
}

func (m *MainMenuScene) start() {
	if m.sceneManager == nil {
		return
	}
	m.sceneManager.StartRun(m.SelectedProfile())
}

// Draw renders the menu.
func (m *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)

	x := config.GameWindowWidth/2 - 120
	y := config.GameWindowHeight/2 - 80
	lines := m.lines()
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x, y+i*config.HUDLineHeight*2)
	}
}

func (m *MainMenuScene) lines() []string {
	profile := m.SelectedProfile()
	if profile == "" {
		profile = "default"
	}
	return []string{
		"HIGHWAY RUNNER",
		fmt.Sprintf("High score: %d", m.highScore),
		fmt.Sprintf("Profile: < %s >", profile),
		"Enter / click to start",
		"Left/Right: steer  Space: jump",
		"Z: shield  X: reposition  P: pause",
	}
}
