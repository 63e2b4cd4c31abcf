// Package testsupport builds fixture trees and configurations for tests.
package testsupport
