// Package config loads the digest configuration from a YAML file and
// channel credentials from the environment and OS keyring.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "30s" or "2m".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

type FetchConfig struct {
	Timeout        Duration `yaml:"timeout"`
	HostRate       float64  `yaml:"host_rate"`
	HostBurst      int      `yaml:"host_burst"`
	RetryMax       int      `yaml:"retry_max"`
	RetryBaseDelay Duration `yaml:"retry_base_delay"`
}

type CurationConfig struct {
	CompanyCap       int      `yaml:"company_cap"`
	PriorityKeywords []string `yaml:"priority_keywords"`
	MetroKeywords    []string `yaml:"metro_keywords"`
}

type DeliveryConfig struct {
	SegmentLimit int      `yaml:"segment_limit"`
	SegmentDelay Duration `yaml:"segment_delay"`
	Channels     []string `yaml:"channels"`
}

type StoreConfig struct {
	Path string `yaml:"path"`
}

type LockConfig struct {
	Path string `yaml:"path"`
}

type Config struct {
	RunTimeUTC string          `yaml:"run_time_utc"`
	Sources    map[string]bool `yaml:"sources"`
	Fetch      FetchConfig     `yaml:"fetch"`
	Curation   CurationConfig  `yaml:"curation"`
	Delivery   DeliveryConfig  `yaml:"delivery"`
	Store      StoreConfig     `yaml:"store"`
	Lock       LockConfig      `yaml:"lock"`
}

var defaultPriorityKeywords = []string{
	"developer", "software engineer", "sde", "backend", "frontend", "full stack",
}

var defaultMetroKeywords = []string{
	"bangalore", "bengaluru", "hyderabad", "mumbai", "chennai",
	"delhi", "pune", "gurgaon", "noida",
}

// Load reads, defaults, and validates the config at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.RunTimeUTC == "" {
		c.RunTimeUTC = "08:30"
	}
	if len(c.Sources) == 0 {
		c.Sources = map[string]bool{
			"remoteok":       true,
			"remotive":       true,
			"weworkremotely": true,
			"workingnomads":  true,
			"googlejobs":     false,
		}
	}
	if c.Fetch.Timeout == 0 {
		c.Fetch.Timeout = Duration(30 * time.Second)
	}
	if c.Fetch.HostRate == 0 {
		c.Fetch.HostRate = 1
	}
	if c.Fetch.HostBurst == 0 {
		c.Fetch.HostBurst = 2
	}
	if c.Fetch.RetryMax == 0 {
		c.Fetch.RetryMax = 3
	}
	if c.Fetch.RetryBaseDelay == 0 {
		c.Fetch.RetryBaseDelay = Duration(2 * time.Second)
	}
	if c.Curation.CompanyCap == 0 {
		c.Curation.CompanyCap = 5
	}
	if len(c.Curation.PriorityKeywords) == 0 {
		c.Curation.PriorityKeywords = defaultPriorityKeywords
	}
	if len(c.Curation.MetroKeywords) == 0 {
		c.Curation.MetroKeywords = defaultMetroKeywords
	}
	if c.Delivery.SegmentLimit == 0 {
		c.Delivery.SegmentLimit = 3800
	}
	if c.Delivery.SegmentDelay == 0 {
		c.Delivery.SegmentDelay = Duration(2 * time.Second)
	}
	if len(c.Delivery.Channels) == 0 {
		c.Delivery.Channels = []string{"telegram"}
	}
	if c.Store.Path == "" {
		c.Store.Path = "jobsdigest.db"
	}
	if c.Lock.Path == "" {
		c.Lock.Path = "jobsdigest.lock"
	}
}

func (c *Config) validate() error {
	if _, _, err := ParseRunTime(c.RunTimeUTC); err != nil {
		return err
	}
	for _, ch := range c.Delivery.Channels {
		switch ch {
		case "telegram", "whatsapp", "log":
		default:
			return fmt.Errorf("unknown delivery channel %q", ch)
		}
	}
	if c.Delivery.SegmentLimit < 200 {
		return fmt.Errorf("segment_limit %d is too small to hold a single entry", c.Delivery.SegmentLimit)
	}
	if c.Curation.CompanyCap < 1 {
		return fmt.Errorf("company_cap must be at least 1")
	}
	return nil
}

// ParseRunTime parses an "HH:MM" wall-clock string.
func ParseRunTime(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, fmt.Errorf("run_time_utc %q must be HH:MM: %w", s, err)
	}
	return t.Hour(), t.Minute(), nil
}
