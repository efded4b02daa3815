package tui

import "github.com/runoshun/git-board/internal/usecase"

// Msg is the interface for all board messages.
// All message types implement this sealed interface.
//
//sumtype:decl
type Msg interface {
	sealed()
}

// MsgBoardLoaded is sent when a board snapshot has been loaded.
type MsgBoardLoaded struct {
	Columns []usecase.ColumnTasks
}

func (MsgBoardLoaded) sealed() {}

// MsgError is sent when loading the board fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}
