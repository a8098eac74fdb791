package keychain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.abhg.dev/pwstore/internal/attr"
	"go.abhg.dev/pwstore/internal/credential"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name string
		give credential.Identity
		want locator
	}{
		{
			name: "Generic",
			give: credential.NewGeneric("MyPassword", "TestApp"),
			want: locator{Service: "generic-password:TestApp", User: "MyPassword"},
		},
		{
			name: "GenericGroup",
			give: credential.NewGeneric("MyPassword", "TestApp",
				credential.AccessGroup("com.example.app"),
				credential.Synchronizable()),
			want: locator{
				Service: "generic-password:com.example.app/TestApp",
				User:    "MyPassword",
				Sync:    true,
			},
		},
		{
			name: "Network",
			give: credential.NewNetwork("MyPassword", "github.com"),
			want: locator{Service: "internet-password:https://github.com", User: "MyPassword"},
		},
		{
			name: "GenericURLService",
			give: credential.NewGeneric("MyPassword", "https://github.com"),
			want: locator{Service: "generic-password:https%3A%2F%2Fgithub.com", User: "MyPassword"},
		},
		{
			name: "GenericSlashService",
			give: credential.NewGeneric("MyPassword", "grp/svc"),
			want: locator{Service: "generic-password:grp%2Fsvc", User: "MyPassword"},
		},
		{
			name: "GenericEscapedGroup",
			give: credential.NewGeneric("MyPassword", "svc",
				credential.AccessGroup("a/b")),
			want: locator{Service: "generic-password:a%2Fb/svc", User: "MyPassword"},
		},
		{
			name: "Percent",
			give: credential.NewGeneric("MyPassword", "100%"),
			want: locator{Service: "generic-password:100%25", User: "MyPassword"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := locate(credential.LookupAttributes(tt.give))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLocate_errors(t *testing.T) {
	account := attr.Attr{Key: attr.KeyAccount, Value: attr.StringValue("alice")}

	tests := []struct {
		name   string
		give   attr.Set
		status Status
	}{
		{
			name:   "NoClass",
			give:   attr.New(account),
			status: StatusParam,
		},
		{
			name: "NoAccount",
			give: attr.New(
				attr.Attr{Key: attr.KeyClass, Value: attr.TagValue(attr.ClassGenericPassword)},
				attr.Attr{Key: attr.KeyService, Value: attr.StringValue("svc")},
			),
			status: StatusParam,
		},
		{
			name: "NoService",
			give: attr.New(
				attr.Attr{Key: attr.KeyClass, Value: attr.TagValue(attr.ClassGenericPassword)},
				account,
			),
			status: StatusParam,
		},
		{
			name: "NoServer",
			give: attr.New(
				attr.Attr{Key: attr.KeyClass, Value: attr.TagValue(attr.ClassInternetPassword)},
				account,
			),
			status: StatusParam,
		},
		{
			name: "UnknownClass",
			give: attr.New(
				attr.Attr{Key: attr.KeyClass, Value: attr.TagValue("certificate")},
				account,
			),
			status: StatusUnimplemented,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := locate(tt.give)
			require.Error(t, err)
			assert.Equal(t, tt.status, StatusOf(err))
		})
	}
}

func TestLocate_distinct(t *testing.T) {
	// Each pair spells the same strings in different fields
	// and must land at different addresses.
	tests := []struct {
		name string
		a, b credential.Identity
	}{
		{
			name: "GenericVsNetwork",
			a:    credential.NewGeneric("MyPassword", "https://github.com"),
			b:    credential.NewNetwork("MyPassword", "github.com"),
		},
		{
			name: "GroupedVsSlash",
			a:    credential.NewGeneric("svc", "grp/svc"),
			b:    credential.NewGeneric("svc", "svc", credential.AccessGroup("grp")),
		},
		{
			name: "NetworkGroupedVsServer",
			a:    credential.NewNetwork("alice", "grp/https://host"),
			b:    credential.NewNetwork("alice", "host", credential.AccessGroup("grp")),
		},
		{
			name: "PipeInAccount",
			a:    credential.NewGeneric("b|c", "a"),
			b:    credential.NewGeneric("c", "a|b"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			locA, err := locate(credential.BaseAttributes(tt.a))
			require.NoError(t, err)
			locB, err := locate(credential.BaseAttributes(tt.b))
			require.NoError(t, err)

			assert.NotEqual(t, locA.key(), locB.key())
			if locA.User == locB.User {
				assert.NotEqual(t, locA.Service, locB.Service)
			}
		})
	}
}

func TestLocator_key(t *testing.T) {
	assert.Equal(t, "internet-password:https://github.com|alice",
		locator{Service: "internet-password:https://github.com", User: "alice"}.key())
	assert.Equal(t, "generic-password:a%7Cb|c%7Cd",
		locator{Service: "generic-password:a%7Cb", User: "c|d"}.key())
}
