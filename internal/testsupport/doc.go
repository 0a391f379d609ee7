// Package testsupport provides fixtures shared by package tests: a seeded
// configuration rooted in temp directories and synthetic aligned recordings.
package testsupport
