package store

// Schema is written in Postgres flavour; the sqlite store translates it on
// the fly the same way migrations are translated.
const Schema = `
CREATE TABLE IF NOT EXISTS contest (
	start_gz BIGINT NOT NULL,
	end_gz BIGINT NOT NULL,
	sol_limit BIGINT NOT NULL,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	now TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS problem (
	id BIGINT NOT NULL,
	time_limit BIGINT NOT NULL,
	code TEXT NOT NULL,
	name TEXT NOT NULL,
	problem_type_id BIGINT NOT NULL,
	pset TEXT,
	start_gz BIGINT,
	end_gz BIGINT,
	info TEXT,
	problem_setter_id BIGINT,
	source TEXT
);

CREATE TABLE IF NOT EXISTS problem_type (
	id BIGINT NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS contest_user (
	id BIGINT NOT NULL,
	username TEXT NOT NULL,
	name TEXT NOT NULL,
	school TEXT,
	email TEXT,
	info1 TEXT,
	info2 TEXT,
	start TIMESTAMP,
	"end" TIMESTAMP
);

CREATE TABLE IF NOT EXISTS submission (
	user_id BIGINT NOT NULL,
	problem_id BIGINT NOT NULL,
	submit_gz BIGINT NOT NULL,
	status_id BIGINT NOT NULL,
	language_id BIGINT,
	score DOUBLE PRECISION,
	time DOUBLE PRECISION,
	date TEXT,
	submission_id BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS status (
	id BIGINT NOT NULL,
	name TEXT NOT NULL
);
`
