// Package ui contains the Bubble Tea program that renders the stock grid.
// The Model type focuses on message orchestration while dedicated helpers
// own navigation, text input, rendering and backend traffic.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Each tea.Msg is
//     routed through a typed handler registry to one focused function.
//   - Key presses are interpreted by the active mode: the grid itself, the
//     row count field, the find prompt, or the size menu.
//
// State ownership:
//   - The Update loop is the only goroutine that reads or writes the
//     table.StockDelegate. Nothing else holds a reference that it uses.
//   - Cursor, viewport, find and mark state live in internal/ui/state and
//     never touch row data directly.
//
// Backend interactions:
//   - Page fetches run as tea.Cmd goroutines. requestNextPage marks the
//     delegate as loading before the command starts and the resulting
//     pageLoadedMsg carries the delegate epoch, so a page that finishes after
//     a reset is dropped.
//   - A backend.RefreshTicker publishes ticks on a channel; waitForTick
//     receives one at a time and the dispatcher applies it inside Update.
package ui
