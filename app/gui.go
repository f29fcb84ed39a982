package app

import (
	"fmt"
	"strings"

	gui "github.com/grupawp/warships-gui/v2"
	"github.com/mitchellh/go-wordwrap"
	"github.com/wojtekolesinski/battleships-solo/models"
)

const (
	helpText = "Place your ships on the left board one segment at a time, then fire at the right board. " +
		"During the battle click your own board to show or hide the enemy fleet. " +
		"When the game is over click any board to start again."
	helpWidth = 80
)

type ui struct {
	gui            *gui.GUI
	playerBoard    *gui.Board
	computerBoard  *gui.Board
	infoText       *gui.Text
	exitText       *gui.Text
	hintText       *gui.Text
	playerAccuracy *gui.Text
	cpuAccuracy    *gui.Text
}

func newUi() *ui {
	g := gui.NewGUI(true)
	playerBoard := gui.NewBoard(2, 6, nil)
	computerBoard := gui.NewBoard(60, 6, nil)
	exitText := gui.NewText(2, 2, "Press Ctrl+C to exit", nil)
	infoText := gui.NewText(2, 4, "", nil)
	hintText := gui.NewText(2, 31, "", nil)
	playerAccuracy := gui.NewText(2, 29, "Accuracy: 0.00%", &gui.TextConfig{FgColor: gui.White, BgColor: gui.Black})
	cpuAccuracy := gui.NewText(60, 29, "Accuracy: 0.00%", &gui.TextConfig{FgColor: gui.White, BgColor: gui.Black})

	g.Draw(playerBoard)
	g.Draw(computerBoard)
	g.Draw(exitText)
	g.Draw(infoText)
	g.Draw(hintText)
	g.Draw(playerAccuracy)
	g.Draw(cpuAccuracy)
	g.Draw(gui.NewText(2, 28, "You", nil))
	g.Draw(gui.NewText(60, 28, "CPU", nil))

	u := &ui{
		gui:            g,
		playerBoard:    playerBoard,
		computerBoard:  computerBoard,
		infoText:       infoText,
		exitText:       exitText,
		hintText:       hintText,
		playerAccuracy: playerAccuracy,
		cpuAccuracy:    cpuAccuracy,
	}
	u.renderHelp(helpText)
	return u
}

func (u *ui) renderHelp(text string) {
	fragments := strings.Split(wordwrap.WrapString(text, helpWidth), "\n")
	for i, f := range fragments {
		u.gui.Draw(gui.NewText(2, 33+i, f, nil))
	}
}

func (u *ui) render(snap models.Snapshot) {
	u.playerBoard.SetStates(toStates(snap.PlayerBoard))
	u.computerBoard.SetStates(toStates(snap.ComputerBoard))
	u.playerAccuracy.SetText(formatAccuracy(snap.PlayerScore))
	u.cpuAccuracy.SetText(formatAccuracy(snap.ComputerScore))
	u.hintText.SetText(formatHint(snap))

	if snap.Turn == models.GameOver {
		u.renderGameResult(snap)
		return
	}
	u.infoText.SetBgColor(gui.Black)
	u.infoText.SetFgColor(gui.White)
	u.setInfoText(snap.Status)
}

func (u *ui) setInfoText(text string) {
	u.infoText.SetText(text)
}

func (u *ui) renderGameResult(snap models.Snapshot) {
	if snap.Winner == models.Human.String() {
		u.infoText.SetBgColor(gui.Green)
	} else {
		u.infoText.SetBgColor(gui.Red)
	}
	u.infoText.SetFgColor(gui.White)
	u.setInfoText(fmt.Sprintf("%s. Click a board to play again", snap.Status))
}
