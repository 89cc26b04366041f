package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/wasteland/internal/data"
)

func TestMapIdentity(t *testing.T) {
	tests := []struct {
		name     string
		opts     options
		info     data.MapInfo
		wantID   string
		wantName string
	}{
		{"flag wins", options{mapID: "override", mapPath: "maps/bunker.json"}, data.MapInfo{ID: "bunker", Name: "Bunker"}, "override", "Bunker"},
		{"file id", options{mapPath: "maps/x.json"}, data.MapInfo{ID: "bunker", Name: "Bunker"}, "bunker", "Bunker"},
		{"file name", options{mapPath: "maps/old_town.json"}, data.MapInfo{}, "old_town", "old_town"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, name := mapIdentity(tt.opts, tt.info)
			assert.Equal(t, tt.wantID, id)
			assert.Equal(t, tt.wantName, name)
		})
	}
}
