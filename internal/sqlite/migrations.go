package sqlite

func (s Storage) RunMigrations() error {
	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return err
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER NOT NULL PRIMARY KEY CHECK (id = 1),
		user_id INTEGER NOT NULL,
		name VARCHAR NOT NULL DEFAULT "",
		email VARCHAR NOT NULL DEFAULT "",
		picture VARCHAR NOT NULL DEFAULT "",
		token TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS groups (
		id INTEGER NOT NULL PRIMARY KEY,
		name VARCHAR NOT NULL,
		description VARCHAR NOT NULL DEFAULT "",
		invite_code VARCHAR NOT NULL DEFAULT ""
	)`,
}
