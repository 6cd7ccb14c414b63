package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"fitness-app-go/pkg/client"
	"fitness-app-go/pkg/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func fakeSession() *client.Session {
	return &client.Session{
		Token: gofakeit.UUID(),
		User: client.Profile{
			ID:    gofakeit.UUID(),
			Name:  gofakeit.Name(),
			Email: gofakeit.Email(),
		},
	}
}

func TestSessionSignInPersistsAcrossRestarts(t *testing.T) {
	kv := newMemKV()
	api := newFakeAPI()
	api.session = fakeSession()
	ctx := context.Background()

	sess := NewSession(kv, logger.Discard())
	sess.Attach(api)
	ok, err := sess.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	profile, err := sess.SignIn(ctx, api.session.User.Email, "segredo1")
	require.NoError(t, err)
	assert.Equal(t, api.session.User.ID, profile.ID)
	assert.Equal(t, api.session.Token, api.currentToken())

	restarted := NewSession(kv, logger.Discard())
	ok, err = restarted.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	otherAPI := newFakeAPI()
	restarted.Attach(otherAPI)
	assert.Equal(t, api.session.Token, otherAPI.currentToken())
	assert.Equal(t, api.session.User.Name, restarted.User().Name)
}

func TestSessionSignInFailureKeepsSignedOut(t *testing.T) {
	kv := newMemKV()
	api := newFakeAPI()
	api.loginErr = &client.ServerError{Status: 401, Code: "invalid_credentials", Message: "Credenciais inválidas."}

	sess := NewSession(kv, logger.Discard())
	sess.Attach(api)
	_, err := sess.SignIn(context.Background(), "a@b.com", "x")

	assert.Equal(t, "Credenciais inválidas.", client.UserMessage(err))
	assert.False(t, sess.SignedIn())
	assert.Zero(t, kv.len())
}

func TestSessionSignOutClearsEvenWhenServerFails(t *testing.T) {
	kv := newMemKV()
	api := newFakeAPI()
	api.session = fakeSession()
	api.logoutErr = &client.TransportError{Err: errors.New("offline")}
	ctx := context.Background()

	sess := NewSession(kv, logger.Discard())
	sess.Attach(api)
	_, err := sess.SignIn(ctx, "a@b.com", "x")
	require.NoError(t, err)

	err = sess.SignOut(ctx)
	assert.Error(t, err)
	assert.False(t, sess.SignedIn())
	assert.Nil(t, sess.User())
	assert.Zero(t, kv.len())
	assert.Empty(t, api.currentToken())
	assert.Equal(t, 1, api.logouts)
}

func TestSessionExpireSkipsServer(t *testing.T) {
	kv := newMemKV()
	api := newFakeAPI()
	api.session = fakeSession()

	sess := NewSession(kv, logger.Discard())
	sess.Attach(api)
	_, err := sess.SignIn(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	sess.Expire()

	assert.False(t, sess.SignedIn())
	assert.Zero(t, kv.len())
	assert.Zero(t, api.logouts)
}

func TestSessionLoadDiscardsIncompleteRecord(t *testing.T) {
	kv := newMemKV()
	require.NoError(t, kv.Set(context.Background(), keyToken, "tok"))
	require.NoError(t, kv.Set(context.Background(), keyUser, "{not json"))

	sess := NewSession(kv, logger.Discard())
	ok, err := sess.Load(context.Background())

	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, kv.len())
}

func TestSessionUpdateRequiresSignIn(t *testing.T) {
	sess := NewSession(newMemKV(), logger.Discard())
	err := sess.Update(context.Background(), &client.Profile{ID: "u1"})
	assert.ErrorIs(t, err, ErrSignedOut)
}
