package history

import (
	"database/sql"
	"errors"
	"time"
)

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		id           string
		state        string
		video        sql.NullString
		background   sql.NullString
		menuVideo    sql.NullString
		encoded      sql.NullString
		iso          sql.NullString
		drive        sql.NullString
		errorKind    sql.NullString
		errorMessage sql.NullString
		createdRaw   sql.NullString
		updatedRaw   sql.NullString
	)
	if err := scanner.Scan(
		&id,
		&state,
		&video,
		&background,
		&menuVideo,
		&encoded,
		&iso,
		&drive,
		&errorKind,
		&errorMessage,
		&createdRaw,
		&updatedRaw,
	); err != nil {
		return Run{}, err
	}

	run := Run{
		ID:               id,
		State:            state,
		VideoPath:        video.String,
		BackgroundPath:   background.String,
		MenuVideoPath:    menuVideo.String,
		EncodedVideoPath: encoded.String,
		ISOPath:          iso.String,
		Drive:            drive.String,
		ErrorKind:        errorKind.String,
		ErrorMessage:     errorMessage.String,
	}
	if created, err := parseTimeString(createdRaw.String); err == nil {
		run.CreatedAt = created
	}
	if updated, err := parseTimeString(updatedRaw.String); err == nil {
		run.UpdatedAt = updated
	}
	return run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}
