package room

import (
	"context"
	"errors"

	"github.com/shadowgame/impostor-server/internal/model"
)

// Snapshot builds a consistent view of the room for one viewer. Roles
// of living players other than the viewer stay hidden until the room
// has ended; an empty viewer wallet yields the public broadcast view.
func (c *Controller) Snapshot(ctx context.Context, roomID model.RoomID, viewerWallet model.Wallet) (*model.RoomSnapshot, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	players, err := c.storage.PlayersForRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}

	ended := room.Status == model.RoomStatusEnded

	snapshot := &model.RoomSnapshot{
		ID:           room.ID,
		Code:         room.Code,
		Status:       room.Status,
		Phase:        room.Phase,
		HostWallet:   room.HostWallet,
		PhaseSeconds: phaseSeconds(room.Status),
	}

	for _, p := range players {
		view := model.PlayerView{
			ID:       p.ID,
			Wallet:   p.Wallet,
			Nickname: p.Nickname,
			IsAlive:  p.IsAlive,
			IsReady:  p.IsReady,
			IsHost:   p.IsHost,
		}
		if ended || p.Wallet == viewerWallet {
			view.Role = p.Role
		}
		if p.Wallet == viewerWallet && viewerWallet != "" {
			snapshot.MyID = p.ID
			snapshot.MyRole = p.Role
		}
		snapshot.Players = append(snapshot.Players, view)
	}

	if ended {
		gameResult, err := c.storage.GetResultForRoom(ctx, roomID)
		if err != nil && !errors.Is(err, model.ErrResultNotFound) {
			return nil, err
		}
		if gameResult != nil {
			snapshot.WinnerTeam = gameResult.WinnerTeam
			snapshot.GameID = gameResult.GameID
		}
	}

	return snapshot, nil
}

// phaseSeconds returns the suggested duration of the current phase, or
// zero when no deadline applies
func phaseSeconds(status model.RoomStatus) int {
	switch status {
	case model.RoomStatusNight:
		return NightSeconds
	case model.RoomStatusDay:
		return DaySeconds
	case model.RoomStatusVoting:
		return VotingSeconds
	default:
		return 0
	}
}
