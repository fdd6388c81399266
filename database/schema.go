package database

// Schema is the reference DDL for the Postgres tables. Deployments apply
// it through the migration tooling; it lives here so the table shapes are
// reviewable next to the code that queries them.
const Schema = `
CREATE TABLE IF NOT EXISTS users (
    id              BIGSERIAL PRIMARY KEY,
    email           TEXT NOT NULL UNIQUE,
    username        TEXT,
    hashed_password TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS blog_posts (
    id         BIGSERIAL PRIMARY KEY,
    title      TEXT NOT NULL,
    content    TEXT NOT NULL,
    author     TEXT NOT NULL,
    image_url  TEXT,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_blog_posts_created_at ON blog_posts (created_at);

CREATE TABLE IF NOT EXISTS post_reactions (
    post_id       BIGINT NOT NULL REFERENCES blog_posts (id) ON DELETE CASCADE,
    reaction_type TEXT   NOT NULL,
    count         INTEGER NOT NULL DEFAULT 1,
    PRIMARY KEY (post_id, reaction_type)
);
`
