// Package stats parses the haproxy stats socket output.
//
// "show stat" returns one CSV row per proxy service in a fixed column order
// (see Schema). ParseStat coerces each row into a ServiceRecord and groups
// the records by proxy id into a Snapshot. Rows are keyed inside their proxy
// by "FRONTEND"/"BACKEND" for the aggregate records and by service id for
// servers and listening sockets.
//
// "show info" returns "Key: value" lines in arbitrary order; ParseInfo keeps
// the fields the dashboard header needs.
package stats
