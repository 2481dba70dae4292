//go:generate mockgen -source=../repositories.go       -destination=./mock_repositories.go       -package=mocks
//go:generate mockgen -source=../notification_cache.go -destination=./mock_notification_cache.go -package=mocks
//go:generate mockgen -source=../validator.go          -destination=./mock_validator.go          -package=mocks
//go:generate mockgen -source=../logger.go             -destination=./mock_logger.go             -package=mocks
//go:generate mockgen -source=../message_consumer.go   -destination=./mock_message_consumer.go   -package=mocks
//go:generate mockgen -source=../inbox_read_service.go -destination=./mock_inbox_read_service.go -package=mocks

package mocks
