package runtime

import (
	"errors"
	"testing"
)

func TestStatusCanTransition(t *testing.T) {
	all := []Status{Creating, Created, Running, Stopped}
	legal := map[[2]Status]bool{
		{Creating, Created}: true,
		{Created, Running}:  true,
		{Running, Stopped}:  true,
		{Stopped, Running}:  true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]Status{from, to}]
			if got := from.CanTransition(to); got != want {
				t.Errorf("%s -> %s = %v, want %v", from, to, got, want)
			}
		}
	}
}

func TestStatusValues(t *testing.T) {
	tests := map[Status]string{
		Creating: "creating",
		Created:  "created",
		Running:  "running",
		Stopped:  "stopped",
	}
	for s, want := range tests {
		if s.String() != want {
			t.Errorf("String() = %q, want %q", s.String(), want)
		}
	}
}

func TestValidateID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{id: "web"},
		{id: "web-1.2_x+y"},
		{id: "A9"},
		{id: "", wantErr: true},
		{id: ".", wantErr: true},
		{id: "..", wantErr: true},
		{id: "a/b", wantErr: true},
		{id: "../etc", wantErr: true},
		{id: "has space", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateID(tt.id)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ValidateID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidID) {
				t.Fatalf("err = %v, want ErrInvalidID", err)
			}
		})
	}
}
