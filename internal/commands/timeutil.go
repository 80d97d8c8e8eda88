package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultTimezone is used when a timezone option is omitted.
const DefaultTimezone = "Asia/Seoul"

// TimezoneChoices lists the zones offered by the time utility commands.
var TimezoneChoices = []string{
	"UTC", "Asia/Seoul", "Asia/Tokyo", "Europe/Paris", "America/Los_Angeles",
	"America/Denver", "America/Chicago", "America/New_York", "Europe/Athens",
	"Europe/Moscow", "Asia/Kolkata", "Asia/Dubai", "Australia/Sydney",
	"Pacific/Auckland", "Pacific/Honolulu",
}

// CommandConvertStamp renders a unix timestamp in a chosen timezone.
func (c *Commands) CommandConvertStamp(stamp, timezone string) (*discordgo.MessageEmbed, error) {
	log.Debugf("processing command /convertstamp %s (%s)", stamp, timezone)

	secs, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timestamp %q", stamp)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", timezone)
	}

	local := time.Unix(secs, 0).In(loc).Format("2006-01-02 15:04:05 GMT-07:00")

	return &discordgo.MessageEmbed{
		Title: "Timestamp Conversion",
		Color: ColorBot,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "UTC Timestamp", Value: stamp},
			{Name: fmt.Sprintf("Local Time (%s)", timezone), Value: local},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}

// CommandConvertTime renders the unix timestamp for a wall-clock time in a
// chosen timezone, plus the Discord timestamp markup for it.
func (c *Commands) CommandConvertTime(year, month, day, hour, minute, second int, timezone string) (*discordgo.MessageEmbed, error) {
	log.Debugf("processing command /converttime %d-%d-%d %d:%d:%d (%s)", year, month, day, hour, minute, second, timezone)

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid timezone %q", timezone)
	}
	if year == 0 {
		year = time.Now().In(loc).Year()
	}

	t := time.Date(year, time.Month(month), day, hour, minute, second, 0, loc)
	stamp := t.Unix()

	return &discordgo.MessageEmbed{
		Title: "Time Conversion",
		Color: ColorBot,
		Fields: []*discordgo.MessageEmbedField{
			{Name: fmt.Sprintf("Local Time (%s)", timezone), Value: t.Format("2006-01-02 15:04:05")},
			{Name: "UTC Timestamp", Value: strconv.FormatInt(stamp, 10)},
			{Name: "Discord Markup", Value: fmt.Sprintf("`<t:%d:F>` → <t:%d:F>", stamp, stamp)},
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}, nil
}
