package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/ariadne/pkg/domain/types"
)

func TestTurnRole(t *testing.T) {
	t.Run("valid roles", func(t *testing.T) {
		for _, role := range types.AllTurnRoles() {
			gt.B(t, role.IsValid()).True()
		}
	})

	t.Run("invalid role", func(t *testing.T) {
		gt.B(t, types.TurnRole("system").IsValid()).False()
		gt.B(t, types.TurnRole("").IsValid()).False()
	})

	t.Run("parse", func(t *testing.T) {
		role, err := types.ParseTurnRole("user")
		gt.NoError(t, err)
		gt.Value(t, role).Equal(types.TurnRoleUser)

		_, err = types.ParseTurnRole("bot")
		gt.Error(t, err)
	})
}

func TestResponsePath(t *testing.T) {
	for _, path := range []types.ResponsePath{
		types.ResponsePathStateful,
		types.ResponsePathStateless,
		types.ResponsePathApology,
	} {
		gt.B(t, path.IsValid()).True()
	}
	gt.B(t, types.ResponsePath("direct").IsValid()).False()
}

func TestIDs(t *testing.T) {
	t.Run("conversation IDs are unique", func(t *testing.T) {
		a := types.NewConversationID()
		b := types.NewConversationID()
		gt.String(t, a.String()).NotEqual(b.String())
	})

	t.Run("turn IDs are unique", func(t *testing.T) {
		a := types.NewTurnID()
		b := types.NewTurnID()
		gt.String(t, a.String()).NotEqual(b.String())
	})
}
