package rabbitmq

// QueueConfig очередь и ключ маршрутизации, с которым она привязана к обменнику.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues очереди для событий клуба: проходы через турникет и изменения абонементов.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "gym.checkins", RoutingKey: "checkin.*"},
		{QueueName: "gym.memberships", RoutingKey: "membership.*"},
	}
}
