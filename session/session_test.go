package session

import (
	"net"
	"testing"
	"time"

	"github.com/secroll/missteps/network"
)

// MockConnection is a test double for the network.Connection interface.
type MockConnection struct{}

func (m *MockConnection) Send(msgID uint16, data []byte) error { return nil }
func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func TestNewManager(t *testing.T) {
	manager := NewManager()
	if manager == nil {
		t.Fatal("NewManager should not return nil")
	}
	if manager.sessions == nil {
		t.Fatal("NewManager should initialize the sessions map")
	}
}

func TestManager_Add_Get_Remove(t *testing.T) {
	manager := NewManager()
	sessionID := "test_session_1"
	sess := NewSession(sessionID, &MockConnection{})

	manager.Add(sess)
	if manager.Count() != 1 {
		t.Fatalf("Expected session count to be 1, got %d", manager.Count())
	}

	retrievedSess, exists := manager.Get(sessionID)
	if !exists {
		t.Fatal("Get should find the added session")
	}
	if retrievedSess != sess {
		t.Fatal("Get should return the same session instance")
	}

	manager.Remove(sessionID)
	if manager.Count() != 0 {
		t.Fatalf("Expected session count to be 0 after removal, got %d", manager.Count())
	}

	_, exists = manager.Get(sessionID)
	if exists {
		t.Fatal("Get should not find the removed session")
	}
}

func TestManager_GetByRoom(t *testing.T) {
	manager := NewManager()

	sess1 := NewSession("session1", &MockConnection{})
	sess1.SetRoom("alpha")

	sess2 := NewSession("session2", &MockConnection{})
	sess2.SetRoom("beta")

	sess3 := NewSession("session3", &MockConnection{})
	sess3.SetRoom("alpha")

	manager.Add(sess1)
	manager.Add(sess2)
	manager.Add(sess3)

	alphaSessions := manager.GetByRoom("alpha")
	if len(alphaSessions) != 2 {
		t.Errorf("Expected 2 sessions in room alpha, got %d", len(alphaSessions))
	}

	betaSessions := manager.GetByRoom("beta")
	if len(betaSessions) != 1 {
		t.Errorf("Expected 1 session in room beta, got %d", len(betaSessions))
	}

	gammaSessions := manager.GetByRoom("gamma")
	if len(gammaSessions) != 0 {
		t.Errorf("Expected 0 sessions in room gamma, got %d", len(gammaSessions))
	}
}

func TestSession_RoomAndName(t *testing.T) {
	sess := NewSession("test_session", &MockConnection{})

	if sess.Room() != "" {
		t.Errorf("Expected empty room for a fresh session, got %q", sess.Room())
	}

	sess.SetRoom("alpha")
	sess.SetName("Analyst")

	if sess.Room() != "alpha" {
		t.Errorf("Expected room alpha, got %q", sess.Room())
	}
	if sess.Name() != "Analyst" {
		t.Errorf("Expected name Analyst, got %q", sess.Name())
	}
}
