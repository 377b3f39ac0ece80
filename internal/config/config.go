package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/adg88lu/FreeCalenderBooking/internal/availability"
)

// Config is the full service configuration, loaded from a TOML file with
// environment overrides for anything deployment-specific. Secrets (SendGrid,
// Twilio) never live in the file; the senders read them from the environment.
type Config struct {
	Server       Server       `toml:"server"`
	Availability Availability `toml:"availability"`
	Notify       Notify       `toml:"notify"`
	Digest       Digest       `toml:"digest"`
}

type Server struct {
	Port         int `toml:"port"`
	ReadTimeout  int `toml:"read_timeout"`
	WriteTimeout int `toml:"write_timeout"`
	IdleTimeout  int `toml:"idle_timeout"`
}

// Availability mirrors availability.Config in file form. Weekdays use the
// 0=Sunday .. 6=Saturday convention.
type Availability struct {
	Timezone            string   `toml:"timezone"`
	Weekdays            []int    `toml:"weekdays"`
	DailyStartHour      int      `toml:"daily_start_hour"`
	DailyEndHour        int      `toml:"daily_end_hour"`
	SlotDurationMinutes int      `toml:"slot_duration_minutes"`
	BlockedDates        []string `toml:"blocked_dates"`
}

type Notify struct {
	OperatorEmail string `toml:"operator_email"`
	OperatorName  string `toml:"operator_name"`
	FromEmail     string `toml:"from_email"`
	FromName      string `toml:"from_name"`
}

type Digest struct {
	// Cron schedule for the daily availability digest. Empty disables the job.
	Schedule string `toml:"schedule"`
}

// Default mirrors the calendar the service originally shipped with.
func Default() Config {
	return Config{
		Server: Server{
			Port:         8080,
			ReadTimeout:  10,
			WriteTimeout: 10,
			IdleTimeout:  60,
		},
		Availability: Availability{
			Timezone:            "Europe/Berlin",
			Weekdays:            []int{1, 2, 3, 4, 5},
			DailyStartHour:      9,
			DailyEndHour:        20,
			SlotDurationMinutes: 30,
			BlockedDates:        []string{"2026-02-14", "2026-02-15"},
		},
		Notify: Notify{
			OperatorEmail: "lu.bormann2012@yahoo.de",
			OperatorName:  "Booking Operator",
			FromEmail:     "onboarding@resend.dev",
			FromName:      "Booking System",
		},
	}
}

// Load reads the TOML file at path on top of the defaults, then applies
// environment overrides. A missing file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	if port := os.Getenv("PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", port, err)
		}
		cfg.Server.Port = p
	}
	if from := os.Getenv("SENDGRID_FROM_EMAIL"); from != "" {
		cfg.Notify.FromEmail = from
	}
	if operator := os.Getenv("OPERATOR_EMAIL"); operator != "" {
		cfg.Notify.OperatorEmail = operator
	}

	if _, err := cfg.Availability.ToSchedule(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ToSchedule converts the file form into the immutable availability.Config
// consumed by the slot calculator, validating it on the way.
func (a Availability) ToSchedule() (availability.Config, error) {
	weekdays := make([]time.Weekday, 0, len(a.Weekdays))
	for _, wd := range a.Weekdays {
		weekdays = append(weekdays, time.Weekday(wd))
	}
	cfg := availability.Config{
		Timezone:     a.Timezone,
		Weekdays:     weekdays,
		DailyStart:   a.DailyStartHour,
		DailyEnd:     a.DailyEndHour,
		SlotDuration: a.SlotDurationMinutes,
		BlockedDates: a.BlockedDates,
	}
	if err := cfg.Validate(); err != nil {
		return availability.Config{}, fmt.Errorf("availability config: %w", err)
	}
	return cfg, nil
}
