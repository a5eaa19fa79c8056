// Package mocks provides test doubles for ports interfaces.
//
// These mocks are simple, thread-safe, in-memory implementations suitable for
// unit testing. Each mock provides:
//
//   - Default behavior backed by an in-memory map
//   - Callback functions (xxxFn) for customizing behavior per test
//   - Helper methods for inspecting state
//
// # Usage Example
//
//	func TestTurn(t *testing.T) {
//		requests := mocks.NewRequestStore()
//		users := mocks.NewUserDirectory()
//		users.Add(&domain.User{ID: "u1", Name: "Asha"})
//		// ... wire an assistant and assert on requests.Requests()
//	}
//
// # Available Mocks
//
//   - RequestStore: implements ports.RequestStore
//   - UserDirectory: implements ports.UserDirectory
//   - ConversationLogStore: implements ports.ConversationLogStore
//   - ContextStore: implements ports.ContextStore
package mocks
