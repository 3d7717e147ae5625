package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"010-1234-5678", "010-1234-5678", true},
		{"01012345678", "010-1234-5678", true},
		{" 010 1234 5678 ", "010-1234-5678", true},
		{"02-123-4567", "02-123-4567", true},
		{"021234567", "02-123-4567", true},
		{"010-12-5678", "", false},
		{"abc", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, err := NormalizePhone(tc.in)
		if !tc.ok {
			assert.ErrorIs(t, err, ErrInvalidPhone, tc.in)
			continue
		}
		assert.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "kim@example.com", NormalizeEmail("  Kim@Example.COM "))
}

type fakeResolver struct {
	mx    map[string]bool
	addrs map[string]bool
	calls []string
}

func (f *fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	f.calls = append(f.calls, "mx:"+name)
	if f.mx[name] {
		return []*net.MX{{Host: "mail." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f *fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	f.calls = append(f.calls, "ip:"+host)
	if f.addrs[host] {
		return []net.IPAddr{{IP: net.IPv4(192, 0, 2, 1)}}, nil
	}
	return nil, errors.New("no such host")
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	r := &fakeResolver{}

	assert.False(t, IsEmailDomainValid(context.Background(), r, "no-at-sign"))
	assert.False(t, IsEmailDomainValid(context.Background(), r, "trailing@"))
	assert.False(t, IsEmailDomainValid(context.Background(), r, "@example.com"))
	assert.Empty(t, r.calls)
}

func TestIsEmailDomainValidLookups(t *testing.T) {
	r := &fakeResolver{
		mx:    map[string]bool{"mail.test": true},
		addrs: map[string]bool{"web.test": true},
	}
	ctx := context.Background()

	assert.True(t, IsEmailDomainValid(ctx, r, "a@mail.test"))
	assert.True(t, IsEmailDomainValid(ctx, r, "a@web.test"))
	assert.False(t, IsEmailDomainValid(ctx, r, "a@nowhere.test"))
	assert.Equal(t, []string{"mx:mail.test", "mx:web.test", "ip:web.test", "mx:nowhere.test", "ip:nowhere.test"}, r.calls)
}
