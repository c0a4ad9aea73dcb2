package spritepal

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"os"

	_ "github.com/mattn/go-sqlite3"
)

// Region is a known sprite-sheet location within a game's tile memory,
// usually curated by hand once and shared between users.
type Region struct {
	Name        string `json:"name"`
	Offset      int    `json:"offset"`
	Count       int    `json:"count"`
	DefaultBank int    `json:"default_bank"`
	TilesPerRow int    `json:"tiles_per_row"`
}

// GameDB is a database of known sprite regions keyed by the CRC-32 of a
// game's tile memory snapshot.
type GameDB struct {
	db *sql.DB
}

// NewGameDB opens or creates the database at file.
func NewGameDB(file string) (*GameDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS game (id INTEGER PRIMARY KEY NOT NULL, name STRING NOT NULL UNIQUE)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS checksum (game_id INTEGER NOT NULL, crc TEXT NOT NULL UNIQUE, FOREIGN KEY(game_id) REFERENCES game(id))"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS region (id INTEGER PRIMARY KEY NOT NULL, game_id INTEGER NOT NULL, name STRING NOT NULL, offset INTEGER NOT NULL, count INTEGER NOT NULL, default_bank INTEGER NOT NULL, tiles_per_row INTEGER NOT NULL, FOREIGN KEY(game_id) REFERENCES game(id), UNIQUE(game_id, name))"); err != nil {
		return nil, err
	}

	return &GameDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *GameDB) Close() error {
	return db.db.Close()
}

type jsonGameDB struct {
	Games []jsonGame `json:"games"`
}

type jsonGame struct {
	Name      string   `json:"name"`
	Checksums []string `json:"checksums"`
	Regions   []Region `json:"regions"`
}

// ImportJSON replaces the database contents with the games, checksums and
// regions listed in a JSON document.
func (db *GameDB) ImportJSON(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	b, err := ioutil.ReadAll(f)
	if err != nil {
		return err
	}

	var jsonDB jsonGameDB
	if err := json.Unmarshal(b, &jsonDB); err != nil {
		return err
	}

	for _, table := range []string{"region", "checksum", "game"} {
		if _, err = db.db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}

	for _, g := range jsonDB.Games {
		game, err := db.addGame(g.Name)
		if err != nil {
			return err
		}

		for _, crc := range g.Checksums {
			if err := db.addChecksum(game, crc); err != nil {
				return err
			}
		}

		for _, r := range g.Regions {
			if err := db.addRegion(game, r); err != nil {
				return err
			}
		}
	}

	return nil
}

func (db *GameDB) addGame(name string) (int64, error) {
	var id int64
	switch err := db.db.QueryRow("SELECT id FROM game WHERE name = ?", name).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := db.db.Exec("INSERT INTO game (name) VALUES (?)", name)
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

func (db *GameDB) addChecksum(game int64, crc string) error {
	_, err := db.db.Exec("INSERT OR REPLACE INTO checksum (game_id, crc) VALUES (?, ?)", game, crc)
	return err
}

func (db *GameDB) addRegion(game int64, r Region) error {
	_, err := db.db.Exec("INSERT OR REPLACE INTO region (game_id, name, offset, count, default_bank, tiles_per_row) VALUES (?, ?, ?, ?, ?, ?)",
		game, r.Name, r.Offset, r.Count, r.DefaultBank, r.TilesPerRow)
	return err
}

// FindGameByCRC returns the name of the game whose snapshot has the given
// checksum, or the empty string if nothing matches.
func (db *GameDB) FindGameByCRC(crc string) (string, error) {
	var name string
	switch err := db.db.QueryRow("SELECT g.name FROM checksum AS c JOIN game AS g ON c.game_id = g.id WHERE c.crc = ?", crc).Scan(&name); err {
	case sql.ErrNoRows:
		return "", nil
	case nil:
		return name, nil
	default:
		return "", err
	}
}

// FindRegionsByCRC returns the known sprite regions for the game whose
// snapshot has the given checksum. A nil slice means no match.
func (db *GameDB) FindRegionsByCRC(crc string) ([]Region, error) {
	rows, err := db.db.Query("SELECT r.name, r.offset, r.count, r.default_bank, r.tiles_per_row FROM checksum AS c JOIN game AS g ON c.game_id = g.id JOIN region AS r ON r.game_id = g.id WHERE c.crc = ? ORDER BY r.offset", crc)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regions []Region
	for rows.Next() {
		var r Region
		if err := rows.Scan(&r.Name, &r.Offset, &r.Count, &r.DefaultBank, &r.TilesPerRow); err != nil {
			return nil, err
		}
		regions = append(regions, r)
	}

	return regions, rows.Err()
}
