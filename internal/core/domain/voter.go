package domain

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

type VoterKind string

const (
	VoterKindUser      VoterKind = "user"
	VoterKindAnonymous VoterKind = "anonymous"
)

// VoterIdentity is the key a vote is recorded and deduplicated under. It is
// either an authenticated user or an anonymous device; the zero value means
// the submission carries no identity at all.
type VoterIdentity struct {
	kind     VoterKind
	userID   uuid.UUID
	deviceID string
}

func UserVoter(id uuid.UUID) VoterIdentity {
	return VoterIdentity{kind: VoterKindUser, userID: id}
}

func DeviceVoter(deviceID string) VoterIdentity {
	return VoterIdentity{kind: VoterKindAnonymous, deviceID: deviceID}
}

// ParseVoterIdentity builds an identity from its wire form. An empty kind
// yields the zero identity.
func ParseVoterIdentity(kind, id string) (VoterIdentity, error) {
	switch VoterKind(kind) {
	case "":
		return VoterIdentity{}, nil
	case VoterKindUser:
		userID, err := uuid.Parse(id)
		if err != nil || userID == uuid.Nil {
			return VoterIdentity{}, fmt.Errorf("%w: invalid user id", ErrValidation)
		}
		return UserVoter(userID), nil
	case VoterKindAnonymous:
		if id == "" {
			return VoterIdentity{}, fmt.Errorf("%w: device id is required", ErrValidation)
		}
		return DeviceVoter(id), nil
	default:
		return VoterIdentity{}, ErrInvalidVoterKind
	}
}

func (v VoterIdentity) Kind() VoterKind { return v.kind }

func (v VoterIdentity) IsZero() bool { return v.kind == "" }

func (v VoterIdentity) IsUser() bool { return v.kind == VoterKindUser }

func (v VoterIdentity) UserID() (uuid.UUID, bool) {
	return v.userID, v.kind == VoterKindUser
}

func (v VoterIdentity) DeviceID() (string, bool) {
	return v.deviceID, v.kind == VoterKindAnonymous
}

// Key is a stable string form used for locking and map keys.
func (v VoterIdentity) Key() string {
	switch v.kind {
	case VoterKindUser:
		return "user:" + v.userID.String()
	case VoterKindAnonymous:
		return "device:" + v.deviceID
	default:
		return ""
	}
}

func (v VoterIdentity) String() string {
	if v.IsZero() {
		return "unidentified"
	}
	return v.Key()
}

type voterIdentityJSON struct {
	Kind     VoterKind `json:"kind"`
	ID       string    `json:"id,omitempty"`
	DeviceID string    `json:"device_id,omitempty"`
}

func (v VoterIdentity) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case VoterKindUser:
		return json.Marshal(voterIdentityJSON{Kind: v.kind, ID: v.userID.String()})
	case VoterKindAnonymous:
		return json.Marshal(voterIdentityJSON{Kind: v.kind, DeviceID: v.deviceID})
	default:
		return []byte("null"), nil
	}
}

func (v *VoterIdentity) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = VoterIdentity{}
		return nil
	}
	var raw voterIdentityJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id := raw.ID
	if raw.Kind == VoterKindAnonymous {
		id = raw.DeviceID
	}
	parsed, err := ParseVoterIdentity(string(raw.Kind), id)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
