package booking

import (
	"encoding/json"
	"net/http"
	"sync"

	"pitchbook/models"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var (
	subscribers = make(map[string][]*websocket.Conn)
	mu          sync.Mutex
)

func feedKey(fieldID, date string) string {
	return fieldID + "_" + date
}

// HandleWS serves the live calendar feed for one field and date. Clients
// subscribe at /ws/bookings/:fieldId/:date and receive every booking
// create, reschedule and status change for that slot grid.
func HandleWS(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	key := feedKey(ps.ByName("fieldId"), ps.ByName("date"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "WebSocket upgrade failed", http.StatusBadRequest)
		return
	}

	mu.Lock()
	subscribers[key] = append(subscribers[key], conn)
	mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	mu.Lock()
	conns := subscribers[key]
	newList := make([]*websocket.Conn, 0, len(conns))
	for _, c := range conns {
		if c != conn {
			newList = append(newList, c)
		}
	}
	subscribers[key] = newList
	mu.Unlock()

	conn.Close()
}

// BroadcastBooking pushes a booking to everyone watching its field/date
// feed. Dead connections are dropped on write failure.
func BroadcastBooking(b models.Booking) {
	data, err := json.Marshal(b)
	if err != nil {
		return
	}
	broadcast(feedKey(b.FieldID, b.Date), data)
}

func broadcast(key string, val []byte) {
	mu.Lock()
	defer mu.Unlock()

	conns := subscribers[key]
	newList := conns[:0]
	for _, conn := range conns {
		if err := conn.WriteMessage(websocket.TextMessage, val); err == nil {
			newList = append(newList, conn)
		} else {
			conn.Close()
		}
	}
	subscribers[key] = newList
}
