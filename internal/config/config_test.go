package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMigrateOnBoot(t *testing.T) {
	tests := []struct {
		name  string
		mode  string
		force bool
		want  bool
	}{
		{name: "debug 모드는 항상 마이그레이션", mode: "debug", force: false, want: true},
		{name: "release 모드 기본값은 건너뜀", mode: "release", force: false, want: false},
		{name: "release 모드에서 -migrate로 강제", mode: "release", force: true, want: true},
		{name: "모드 미지정 시 마이그레이션", mode: "", force: false, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{ForceMigrate: tt.force}
			cfg.Server.Mode = tt.mode
			assert.Equal(t, tt.want, cfg.MigrateOnBoot())
		})
	}
}
