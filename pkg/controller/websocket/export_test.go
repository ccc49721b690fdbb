package websocket

// Send exposes the outbound queue for tests.
func (c *Client) Send() <-chan []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.send
}

// ClientSendBufferSize exposes the outbound queue capacity for tests.
const ClientSendBufferSize = clientSendBufferSize
