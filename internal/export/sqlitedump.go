package export

import (
	"fmt"
	"strings"
	"time"
)

// serializeSQLiteDump produces a SQL script that recreates the survey in a
// fresh SQLite database. A textual dump travels better than a binary .db
// file and diffs cleanly.
func serializeSQLiteDump(b Bundle) ([]byte, error) {
	var sb strings.Builder

	sb.WriteString("BEGIN TRANSACTION;\n\n")

	sb.WriteString(`CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description TEXT,
	created_at TEXT
);

CREATE TABLE IF NOT EXISTS magnetic_readings (
	id INTEGER PRIMARY KEY,
	project_id TEXT,
	latitude REAL,
	longitude REAL,
	altitude REAL,
	accuracy REAL,
	field_x REAL,
	field_y REAL,
	field_z REAL,
	total_field REAL,
	heading REAL,
	note TEXT,
	captured_at INTEGER
);

`)

	if b.Project != nil {
		fmt.Fprintf(&sb, "INSERT INTO projects (id, name, description, created_at) VALUES (%s, %s, %s, %s);\n\n",
			sqlQuote(b.Project.ID),
			sqlQuote(b.Project.Name),
			sqlQuote(b.Project.Description),
			sqlQuote(b.Project.CreatedAt.UTC().Format(time.RFC3339)),
		)
	}

	for _, r := range b.Readings {
		fmt.Fprintf(&sb,
			"INSERT INTO magnetic_readings (id, project_id, latitude, longitude, altitude, accuracy, field_x, field_y, field_z, total_field, heading, note, captured_at) "+
				"VALUES (%d, %s, %.7f, %.7f, %.2f, %.2f, %g, %g, %g, %g, %g, %s, %d);\n",
			r.ID, sqlQuote(r.ProjectID), r.Latitude, r.Longitude, r.Altitude, r.Accuracy,
			r.FieldX, r.FieldY, r.FieldZ, r.TotalField, r.Heading,
			sqlQuote(r.Note), r.CapturedAt,
		)
	}

	sb.WriteString("\nCOMMIT;\n")
	return []byte(sb.String()), nil
}

func sqlQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
