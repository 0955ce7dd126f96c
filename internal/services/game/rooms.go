package game

import (
	"github.com/google/uuid"
)

// Room/Membership Table. Each user-created button is paired 1:1 with a
// private chat room; membership lives on the room only, so button and room
// can never drift apart. A user belongs to at most one room at a time.

// CreateButton allocates a button plus its room with the creator as sole
// member and announces it to everyone.
func (s *gameService) CreateButton(creatorID string, cfg ButtonConfig) (UserButton, error) {
	sess, ok := s.reg.FindByUserID(creatorID)
	if !ok {
		return UserButton{}, ErrUnknownSession
	}

	maxUsers := cfg.MaxUsers
	if maxUsers <= 0 {
		maxUsers = s.opts.DefaultMaxUsers
	}
	title := cfg.Title
	if title == "" {
		title = sess.DisplayName + "'s button"
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Creating a button while in another room counts as leaving it.
	if roomID, in := s.roomOf[creatorID]; in {
		s.leaveRoomLocked(sess, roomID)
	}

	btn := &userButton{
		id:          uuid.NewString(),
		title:       title,
		description: cfg.Description,
		creatorID:   creatorID,
		maxUsers:    maxUsers,
		roomID:      uuid.NewString(),
	}
	room := &chatRoom{
		id:       btn.roomID,
		buttonID: btn.id,
		members:  []string{creatorID},
	}
	s.buttons[btn.id] = btn
	s.rooms[room.id] = room
	s.roomOf[creatorID] = room.id
	s.dsp.JoinRoom(room.id, creatorID)

	dto := s.buttonDTOLocked(btn)
	s.dsp.BroadcastAll(EventButtonCreated, dto)
	return dto, nil
}

// JoinButton adds the user to the button and its room in one step, replays
// the room's chat history to the joiner only, then announces the updated
// button globally.
func (s *gameService) JoinButton(userID, buttonID string) error {
	sess, ok := s.reg.FindByUserID(userID)
	if !ok {
		return ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	btn, ok := s.buttons[buttonID]
	if !ok {
		return ErrNotFound
	}
	room := s.rooms[btn.roomID]

	for _, m := range room.members {
		if m == userID {
			return ErrAlreadyMember
		}
	}
	if len(room.members) >= btn.maxUsers {
		return ErrRoomFull
	}

	if prev, in := s.roomOf[userID]; in {
		s.leaveRoomLocked(sess, prev)
		// The leave may have destroyed the very button being joined.
		if _, still := s.buttons[buttonID]; !still {
			return ErrNotFound
		}
	}

	room.members = append(room.members, userID)
	s.roomOf[userID] = room.id
	s.dsp.JoinRoom(room.id, userID)

	s.dsp.Unicast(userID, EventChatHistory, append([]ChatMessage(nil), room.messages...))
	s.dsp.BroadcastRoom(room.id, EventUserJoined, MembershipDelta{
		ButtonID:    btn.id,
		UserID:      userID,
		DisplayName: sess.DisplayName,
	})
	s.dsp.BroadcastAll(EventButtonUpdated, s.buttonDTOLocked(btn))
	return nil
}

// LeaveButton is idempotent: leaving a button the user is not a member of
// is a no-op.
func (s *gameService) LeaveButton(userID, buttonID string) error {
	sess, ok := s.reg.FindByUserID(userID)
	if !ok {
		return ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, in := s.roomOf[userID]
	if !in {
		return nil
	}
	if btn, ok := s.buttons[buttonID]; ok && btn.roomID != roomID {
		return nil
	}
	s.leaveRoomLocked(sess, roomID)
	return nil
}

// leaveRoomLocked removes the membership, notifies the remaining members
// and destroys button and room together once the last member is gone.
func (s *gameService) leaveRoomLocked(sess Session, roomID string) {
	room, ok := s.rooms[roomID]
	if !ok {
		delete(s.roomOf, sess.UserID)
		return
	}

	kept := room.members[:0]
	for _, m := range room.members {
		if m != sess.UserID {
			kept = append(kept, m)
		}
	}
	room.members = kept
	delete(s.roomOf, sess.UserID)
	s.dsp.LeaveRoom(roomID, sess.UserID)

	btn := s.buttons[room.buttonID]
	if len(room.members) == 0 {
		delete(s.rooms, roomID)
		delete(s.buttons, room.buttonID)
		s.dsp.CloseRoom(roomID)
		s.dsp.BroadcastAll(EventButtonRemoved, map[string]string{"id": room.buttonID})
		return
	}

	s.dsp.BroadcastRoom(roomID, EventUserLeft, MembershipDelta{
		ButtonID:    room.buttonID,
		UserID:      sess.UserID,
		DisplayName: sess.DisplayName,
	})
	if btn != nil {
		s.dsp.BroadcastAll(EventButtonUpdated, s.buttonDTOLocked(btn))
	}
}

// RouteMessage delivers a private message to the sender's room only.
func (s *gameService) RouteMessage(userID, text string) error {
	sess, ok := s.reg.FindByUserID(userID)
	if !ok {
		return ErrUnknownSession
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	roomID, in := s.roomOf[userID]
	if !in {
		return ErrNotFound
	}
	room, ok := s.rooms[roomID]
	if !ok {
		return ErrNotFound
	}

	msg := s.newMessageLocked(sess, text)
	room.messages = append(room.messages, msg)
	s.dsp.BroadcastRoom(roomID, EventNewPrivateMessage, msg)
	return nil
}

func (s *gameService) ListButtons() []UserButton {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := make([]UserButton, 0, len(s.buttons))
	for _, btn := range s.buttons {
		list = append(list, s.buttonDTOLocked(btn))
	}
	return list
}

// destroyAllButtonsLocked tears down every user-created button, as part of
// a round reset.
func (s *gameService) destroyAllButtonsLocked() {
	for id, btn := range s.buttons {
		s.dsp.CloseRoom(btn.roomID)
		s.dsp.BroadcastAll(EventButtonRemoved, map[string]string{"id": id})
		delete(s.rooms, btn.roomID)
		delete(s.buttons, id)
	}
	s.roomOf = make(map[string]string)
}

func (s *gameService) buttonDTOLocked(btn *userButton) UserButton {
	dto := UserButton{
		ID:          btn.id,
		Title:       btn.title,
		Description: btn.description,
		MaxUsers:    btn.maxUsers,
		CreatorID:   btn.creatorID,
		Members:     []string{},
		MemberNames: []string{},
	}
	if room, ok := s.rooms[btn.roomID]; ok {
		dto.Members = append(dto.Members, room.members...)
		for _, m := range room.members {
			if sess, ok := s.reg.FindByUserID(m); ok {
				dto.MemberNames = append(dto.MemberNames, sess.DisplayName)
			}
		}
	}
	return dto
}
