package room

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/shadowgame/impostor-server/internal/model"
)

// SendChat posts a discussion message. Chat is open only during the day
// and only to living players; content is trimmed and length-capped.
func (c *Controller) SendChat(ctx context.Context, roomID model.RoomID, wallet model.Wallet, content string) (*model.ChatMessage, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	if room.Status != model.RoomStatusDay {
		return nil, model.ErrChatClosed
	}

	player, err := c.storage.GetPlayerByWallet(ctx, roomID, wallet)
	if err != nil {
		return nil, model.ErrNotInRoom
	}
	if !player.IsAlive {
		return nil, model.ErrPlayerDead
	}

	content = strings.TrimSpace(content)
	if content == "" || len(content) > model.MaxChatMessageLength {
		return nil, model.ErrInvalidMessage
	}

	msg := &model.ChatMessage{
		ID:        model.MessageID(uuid.NewString()),
		RoomID:    roomID,
		PlayerID:  player.ID,
		Nickname:  player.Nickname,
		Phase:     room.Phase,
		Content:   content,
		CreatedAt: c.clock.Now(),
	}
	if err := c.storage.SaveChatMessage(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// ChatHistory lists the current phase's discussion messages
func (c *Controller) ChatHistory(ctx context.Context, roomID model.RoomID) ([]*model.ChatMessage, error) {
	room, err := c.storage.GetRoom(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return c.storage.ChatForPhase(ctx, roomID, room.Phase)
}
