package keychaintest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/pwstore/internal/attr"
	"go.abhg.dev/pwstore/internal/credential"
	"go.abhg.dev/pwstore/internal/keychain"
)

// TestBackend runs a suite of tests against a backend
// that verifies it satisfies the keychain.Backend contract.
//
// The backend must start out without records for the identities
// used by the suite, and is left without them afterwards.
func TestBackend(t *testing.T, backend keychain.Backend) {
	t.Helper()

	generic := credential.NewGeneric("MyPassword", "TestApp")
	network := credential.NewNetwork("MyPassword", "TestApp")

	lookup := func(id credential.Identity) attr.Set {
		return credential.LookupAttributes(id).
			With(attr.KeyReturnData, attr.BoolValue(true))
	}
	item := func(id credential.Identity, secret string) attr.Set {
		return credential.BaseAttributes(id).
			With(attr.KeyValueData, attr.BytesValue([]byte(secret)))
	}
	payload := func(secret string) attr.Set {
		return attr.New(attr.Attr{
			Key:   attr.KeyValueData,
			Value: attr.BytesValue([]byte(secret)),
		})
	}

	t.Run("FindMissing", func(t *testing.T) {
		_, err := backend.FindOne(lookup(generic))
		assert.ErrorIs(t, err, keychain.ErrItemNotFound)
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := backend.Update(credential.BaseAttributes(generic), payload("x"))
		assert.ErrorIs(t, err, keychain.ErrItemNotFound)
	})

	t.Run("DeleteMissing", func(t *testing.T) {
		err := backend.Delete(credential.BaseAttributes(generic))
		assert.ErrorIs(t, err, keychain.ErrItemNotFound)
	})

	t.Run("InsertWithoutPayload", func(t *testing.T) {
		err := backend.Insert(credential.BaseAttributes(generic))
		require.Error(t, err)
		assert.Equal(t, keychain.StatusParam, keychain.StatusOf(err))
	})

	require.NoError(t, backend.Insert(item(generic, "GD9!3Ef3avJc2G.z")))

	t.Run("Find", func(t *testing.T) {
		got, err := backend.FindOne(lookup(generic))
		require.NoError(t, err)
		assert.Equal(t, "GD9!3Ef3avJc2G.z", string(got))
	})

	t.Run("FindWithoutData", func(t *testing.T) {
		got, err := backend.FindOne(credential.LookupAttributes(generic))
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("InsertDuplicate", func(t *testing.T) {
		err := backend.Insert(item(generic, "other"))
		assert.ErrorIs(t, err, keychain.ErrDuplicateItem)

		got, err := backend.FindOne(lookup(generic))
		require.NoError(t, err)
		assert.Equal(t, "GD9!3Ef3avJc2G.z", string(got),
			"failed insert must not change the record")
	})

	t.Run("Isolation", func(t *testing.T) {
		_, err := backend.FindOne(lookup(network))
		require.ErrorIs(t, err, keychain.ErrItemNotFound)

		require.NoError(t, backend.Insert(item(network, "network secret")))
		defer func() {
			assert.NoError(t, backend.Delete(credential.BaseAttributes(network)))
		}()

		got, err := backend.FindOne(lookup(generic))
		require.NoError(t, err)
		assert.Equal(t, "GD9!3Ef3avJc2G.z", string(got))

		got, err = backend.FindOne(lookup(network))
		require.NoError(t, err)
		assert.Equal(t, "network secret", string(got))
	})

	// Each pair spells the same characters in different fields.
	lookalikes := []struct {
		name string
		a, b credential.Identity
	}{
		{
			name: "GenericURLVsNetwork",
			a:    credential.NewGeneric("MyPassword", "https://TestServer"),
			b:    credential.NewNetwork("MyPassword", "TestServer"),
		},
		{
			name: "SlashVsAccessGroup",
			a:    credential.NewGeneric("MyPassword", "TestGroup/TestApp"),
			b: credential.NewGeneric("MyPassword", "TestApp",
				credential.AccessGroup("TestGroup")),
		},
		{
			name: "PipeInAccount",
			a:    credential.NewGeneric("Test|Pipe", "TestApp"),
			b:    credential.NewGeneric("Pipe", "TestApp|Test"),
		},
		{
			name: "PipeInServer",
			a:    credential.NewNetwork("Test|Pipe", "TestServer"),
			b:    credential.NewNetwork("Pipe", "TestServer|Test"),
		},
	}
	for _, tt := range lookalikes {
		t.Run("Isolation/"+tt.name, func(t *testing.T) {
			require.NoError(t, backend.Insert(item(tt.a, "secret a")))
			defer func() {
				_ = backend.Delete(credential.BaseAttributes(tt.a))
			}()

			_, err := backend.FindOne(lookup(tt.b))
			require.ErrorIs(t, err, keychain.ErrItemNotFound)

			require.NoError(t, backend.Insert(item(tt.b, "secret b")))
			got, err := backend.FindOne(lookup(tt.a))
			require.NoError(t, err)
			assert.Equal(t, "secret a", string(got))

			got, err = backend.FindOne(lookup(tt.b))
			require.NoError(t, err)
			assert.Equal(t, "secret b", string(got))

			require.NoError(t, backend.Delete(credential.BaseAttributes(tt.b)))
			got, err = backend.FindOne(lookup(tt.a))
			require.NoError(t, err, "deleting one record must not remove the other")
			assert.Equal(t, "secret a", string(got))
		})
	}

	t.Run("Update", func(t *testing.T) {
		require.NoError(t, backend.Update(credential.BaseAttributes(generic), payload("!Y*KKT4eFFjG.*mX")))

		got, err := backend.FindOne(lookup(generic))
		require.NoError(t, err)
		assert.Equal(t, "!Y*KKT4eFFjG.*mX", string(got))
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, backend.Delete(credential.BaseAttributes(generic)))

		_, err := backend.FindOne(lookup(generic))
		assert.ErrorIs(t, err, keychain.ErrItemNotFound)
	})
}
