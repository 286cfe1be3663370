package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/example/ec-showcase/internal/auth"
	"github.com/example/ec-showcase/internal/domain/showcase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every override so the host environment cannot leak in
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "DATABASE_URL", "REDIS_ADDR", "KAFKA_BROKERS",
		"KAFKA_TOPIC", "JWT_SECRET", "CLOUDINARY_URL", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "showcase.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

// ============================================
// Load Tests
// ============================================

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 7*time.Second, cfg.GetRotationInterval())
	assert.Equal(t, showcase.DefaultHomepageLayout().LayoutConfig(), cfg.LayoutConfig())
	assert.False(t, cfg.IsAdminEnabled())
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
server:
  addr: ":9090"
showcase:
  rotation_interval: 3s
  homepage:
    top_row: [jackets, polos]
    featured: accessories
    bottom_row_left: flannel-long-sleeve
    bottom_row_right: flannel-short-sleeve
products:
  source: postgres
  database_url: postgres://localhost/showcase
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 3*time.Second, cfg.GetRotationInterval())
	assert.Equal(t, []string{"jackets", "polos"}, cfg.Showcase.Homepage.TopRow)
	assert.Equal(t, SourcePostgres, cfg.Products.Source)
	assert.Equal(t, "ec-showcase-events", cfg.Kafka.Topic, "unset fields keep defaults")
	require.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitLayoutWins(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
showcase:
  layout:
    wide:
      - {name: hero-row, slug: jackets, strategy: triple, span: 3}
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	layout := cfg.LayoutConfig()
	require.Len(t, layout.Wide, 1)
	assert.Equal(t, showcase.StrategyTriple, layout.Wide[0].Strategy)
	assert.Empty(t, layout.Compact)
}

func TestLoad_FixedImagesReplaceDefault(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
showcase:
  fixed_images:
    jackets: [/a.jpg, /b.jpg]
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, map[string][]string{"jackets": {"/a.jpg", "/b.jpg"}}, cfg.Showcase.FixedImages)
}

func TestLoad_EmptyFixedImagesDisablesSpecialCase(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "showcase:\n  fixed_images: {}\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.NotNil(t, cfg.Showcase.FixedImages)
	assert.Empty(t, cfg.Showcase.FixedImages)
}

func TestLoad_AbsentFixedImagesKeepsDefault(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "showcase:\n  rotation_interval: 3s\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, showcase.DefaultFixedImages(), cfg.Showcase.FixedImages)
}

func TestLoad_MalformedYAML(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "server: [unterminated")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("DATABASE_URL", "postgres://db/showcase")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, SourcePostgres, cfg.Products.Source)
	assert.Equal(t, "postgres://db/showcase", cfg.Products.DatabaseURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, "redis:6379", cfg.Cache.RedisAddr)
	assert.True(t, cfg.Kafka.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.IsAdminEnabled())
	assert.NoError(t, cfg.Validate())
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "showcase.yaml")
	cfg := Default()
	cfg.Showcase.RotationInterval = "9s"

	require.NoError(t, cfg.Save(path))
	loaded, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, 9*time.Second, loaded.GetRotationInterval())
	assert.Equal(t, cfg.LayoutConfig(), loaded.LayoutConfig())
}

// ============================================
// Validate Tests
// ============================================

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"bad interval", func(c *Config) { c.Showcase.RotationInterval = "soon" }},
		{"negative interval", func(c *Config) { c.Showcase.RotationInterval = "-1s" }},
		{"sub-millisecond interval", func(c *Config) { c.Showcase.RotationInterval = "500us" }},
		{"interval below floor", func(c *Config) { c.Showcase.RotationInterval = "50ms" }},
		{"unknown source", func(c *Config) { c.Products.Source = "mongo" }},
		{"postgres without url", func(c *Config) { c.Products.Source = SourcePostgres; c.Products.DatabaseURL = "" }},
		{"cache without addr", func(c *Config) { c.Cache.Enabled = true; c.Cache.RedisAddr = "" }},
		{"kafka without topic", func(c *Config) { c.Kafka.Enabled = true; c.Kafka.Topic = "" }},
		{"bad strategy", func(c *Config) {
			c.Showcase.Layout.Wide = []showcase.SlotConfig{{Name: "x", Slug: "polos", Strategy: "carousel", Span: 1}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()

			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestValidate_WeakSecret(t *testing.T) {
	cfg := Default()
	cfg.Auth.JWTSecret = "short"

	assert.ErrorIs(t, cfg.Validate(), auth.ErrWeakSecret)
}

func TestValidate_UnknownSlugIsNotStructural(t *testing.T) {
	cfg := Default()
	cfg.Showcase.Homepage.Featured = "swimwear"

	assert.NoError(t, cfg.Validate())
}

func TestValidate_MinimumInterval(t *testing.T) {
	cfg := Default()
	cfg.Showcase.RotationInterval = MinRotationInterval.String()

	assert.NoError(t, cfg.Validate())
}

func TestKafkaConfig_InstanceGroupID(t *testing.T) {
	k := Default().Kafka

	first := k.InstanceGroupID("api")
	second := k.InstanceGroupID("api")

	assert.True(t, strings.HasPrefix(first, "showcase-projector-api-"), first)
	assert.NotEqual(t, first, second)
	assert.NotEqual(t, k.GroupID, first)
}

func TestDurations_FallBack(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTL = "nope"
	cfg.Auth.TokenExpiry = ""
	cfg.Server.ShutdownTimeout = "0s"

	assert.Equal(t, 5*time.Minute, cfg.GetCacheTTL())
	assert.Equal(t, 15*time.Minute, cfg.GetTokenExpiry())
	assert.Equal(t, 5*time.Second, cfg.GetShutdownTimeout())
}

// ============================================
// Holder Tests
// ============================================

func TestHolder_Swap(t *testing.T) {
	first := Default()
	holder := NewHolder(first)

	second := Default()
	second.Showcase.RotationInterval = "2s"
	second.Showcase.FixedImages = nil
	old := holder.Swap(second)

	assert.Same(t, first, old)
	assert.Same(t, second, holder.Config())
	assert.Equal(t, 2*time.Second, holder.RotationInterval())
	arrangement := holder.Arrangement()
	assert.Nil(t, arrangement.FixedImages)
	assert.Equal(t, second.LayoutConfig(), arrangement.Layout)
}
