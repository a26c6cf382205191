// Package cluster handles the optional service-discovery integration: a
// consul registration with an HTTP health check. Deployments without consul
// simply never call in here.
package cluster

import (
	"fmt"
	"log"
	"os"

	consul "github.com/hashicorp/consul/api"
)

// RegisterServiceInConsul registers this instance under serviceName with an
// HTTP health check against healthPort. The service id is derived from the
// hostname so multiple instances stay distinct.
func RegisterServiceInConsul(serviceName string, servicePort, healthPort int, consulAddr string) error {
	config := consul.DefaultConfig()
	config.Address = consulAddr

	client, err := consul.NewClient(config)
	if err != nil {
		return fmt.Errorf("failed to create consul client: %w", err)
	}

	hostname := os.Getenv("HOSTNAME")
	if hostname == "" {
		hostname, _ = os.Hostname()
	}
	serviceID := fmt.Sprintf("%s-%s", serviceName, hostname)

	registration := &consul.AgentServiceRegistration{
		ID:   serviceID,
		Name: serviceName,
		Port: servicePort,
		Check: &consul.AgentServiceCheck{
			// The agent resolves the container hostname inside the
			// deployment network.
			HTTP:     fmt.Sprintf("http://%s:%d/health", hostname, healthPort),
			Timeout:  "5s",
			Interval: "10s",
			// Drop instances that stay critical; they are gone for good.
			DeregisterCriticalServiceAfter: "1m",
		},
	}

	if err := client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service in consul: %w", err)
	}

	log.Printf("[Cluster] service %q registered in consul as %s", serviceName, serviceID)
	return nil
}
